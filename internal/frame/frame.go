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

package frame

import (
	"bytes"
	"errors"
	"fmt"
)

// Frame validation errors
var (
	ErrDataTooLarge   = errors.New("frame data too large")
	ErrTruncated      = errors.New("frame truncated")
	ErrBadPreamble    = errors.New("frame preamble or start code mismatch")
	ErrBadLengthCheck = errors.New("frame length checksum mismatch")
	ErrBadDataCheck   = errors.New("frame data checksum mismatch")
	ErrBadDirection   = errors.New("frame direction byte mismatch")
)

// BuildCommand wraps cmd and args into a complete host-to-PN532 frame:
//
//	[00 00 FF LEN LCS D4 cmd args... DCS 00]
//
// where LEN covers the TFI, the command byte and the arguments.
func BuildCommand(cmd byte, args []byte) ([]byte, error) {
	dataLen := 2 + len(args) // TFI + cmd + args
	if dataLen > 0xFF {
		// A normal frame carries a single length byte. Extended frames
		// are not used by any command this driver issues.
		return nil, ErrDataTooLarge
	}

	frm := make([]byte, 0, dataLen+7)
	frm = append(frm, Preamble, StartCode1, StartCode2)
	frm = append(frm, byte(dataLen), CalculateLengthChecksum(byte(dataLen)))
	frm = append(frm, HostToPn532, cmd)
	frm = append(frm, args...)
	frm = append(frm, CalculateDataChecksum(HostToPn532, frm[6:]))
	frm = append(frm, Postamble)
	return frm, nil
}

// ParseResponse validates a PN532-to-host frame starting at the beginning
// of buf and returns its payload with the TFI stripped, so the response
// command byte is at index 0. Validation failures are distinct errors,
// never an empty payload.
func ParseResponse(buf []byte) ([]byte, error) {
	if len(buf) < 5 {
		return nil, ErrTruncated
	}
	if buf[0] != Preamble || buf[1] != StartCode1 || buf[2] != StartCode2 {
		return nil, ErrBadPreamble
	}

	length := buf[3]
	if length+buf[4] != 0 {
		return nil, ErrBadLengthCheck
	}
	if length < 1 {
		return nil, ErrTruncated
	}
	// len byte covers TFI + data; one more byte for the DCS.
	if len(buf) < 5+int(length)+1 {
		return nil, ErrTruncated
	}
	if buf[5] != Pn532ToHost {
		return nil, fmt.Errorf("%w: %#02x", ErrBadDirection, buf[5])
	}

	// TFI + data + DCS must sum to zero.
	if ValidateChecksum(buf[5 : 5+int(length)+1]) {
		return nil, ErrBadDataCheck
	}

	payload := make([]byte, length-1)
	copy(payload, buf[6:5+int(length)])
	return payload, nil
}

// FindStart locates the 00 FF start code in buf and returns the offset of
// the length byte that follows it. Used by transports whose bus reads may
// deliver leading garbage before the frame.
func FindStart(buf []byte) (int, error) {
	for off := 0; off+1 < len(buf); off++ {
		if buf[off] == StartCode1 && buf[off+1] == StartCode2 {
			return off + 2, nil
		}
	}
	return 0, ErrBadPreamble
}

// IsAck reports whether buf is exactly the 6-byte ACK frame.
// There is no partial-match leniency.
func IsAck(buf []byte) bool {
	return bytes.Equal(buf, AckFrame)
}
