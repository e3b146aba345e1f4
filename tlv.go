// go-piconfc
// Copyright (c) 2026 The PicoNFC Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-piconfc.
//
// go-piconfc is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-piconfc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-piconfc; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package piconfc

import (
	"encoding/binary"
	"fmt"
)

// Type 2 tag TLV block bytes
const (
	tlvTypeNDEF       = 0x03
	tlvTerminator     = 0xFE
	tlvExtendedLength = 0xFF
)

// TLV is a view into a tag memory dump locating one NDEF TLV block. The
// underlying buffer is shared, not copied.
type TLV struct {
	buffer      []byte
	ValueOffset int
	ValueLength int
}

// Value returns the TLV value bytes as a subslice of the scanned buffer
func (t *TLV) Value() []byte {
	return t.buffer[t.ValueOffset : t.ValueOffset+t.ValueLength]
}

// LocateTLV scans buf for an NDEF TLV block terminated by 0xFE and
// returns a view of its value. A 0x03 byte inside non-NDEF data can
// masquerade as a short-form TLV header; when the implied terminator
// does not check out, the scan resumes one byte past that false tag.
// Extended-length candidates are trusted as found.
func LocateTLV(buf []byte) (*TLV, error) {
	from := 0
	for {
		tlv, next, err := locateTLVFrom(buf, from)
		if err != nil {
			return nil, err
		}
		if tlv != nil {
			return tlv, nil
		}
		from = next
	}
}

// locateTLVFrom attempts one scan pass starting at from. It returns a
// found TLV, or the offset the next pass should start at when the
// candidate's terminator did not match.
func locateTLVFrom(buf []byte, from int) (tlv *TLV, next int, err error) {
	tagAt := -1
	for i := from; i < len(buf); i++ {
		if buf[i] == tlvTypeNDEF {
			tagAt = i
			break
		}
	}
	if tagAt < 0 || tagAt+1 >= len(buf) {
		return nil, 0, ErrNoNDEF
	}

	valueOff := tagAt + 2
	valueLen := int(buf[tagAt+1])
	extended := false
	if buf[tagAt+1] == tlvExtendedLength {
		if tagAt+4 > len(buf) {
			return nil, 0, ErrNoNDEF
		}
		valueOff = tagAt + 4
		valueLen = int(binary.BigEndian.Uint16(buf[tagAt+2 : tagAt+4]))
		extended = true
	}

	end := valueOff + valueLen
	if end >= len(buf) || buf[end] != tlvTerminator {
		if extended {
			return nil, 0, fmt.Errorf("%w: missing TLV terminator", ErrNoNDEF)
		}
		// Short-form false positive. Resume past the tag byte.
		return nil, tagAt + 1, nil
	}

	return &TLV{buffer: buf, ValueOffset: valueOff, ValueLength: valueLen}, 0, nil
}

// EncodeTLV wraps data in an NDEF TLV block in dst and returns the number
// of bytes written. dst must have room for the worst-case framing of five
// bytes regardless of which length form is used.
func EncodeTLV(dst, data []byte) (int, error) {
	if len(dst) < len(data)+5 {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, len(data)+5, len(dst))
	}
	if len(data) > 0xFFFF {
		return 0, fmt.Errorf("%w: %d bytes exceeds TLV capacity", ErrDataTooLarge, len(data))
	}

	n := 0
	dst[n] = tlvTypeNDEF
	n++
	if len(data) < int(tlvExtendedLength) {
		dst[n] = byte(len(data))
		n++
	} else {
		dst[n] = tlvExtendedLength
		binary.BigEndian.PutUint16(dst[n+1:], uint16(len(data)))
		n += 3
	}
	n += copy(dst[n:], data)
	dst[n] = tlvTerminator
	n++
	return n, nil
}
