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
	"errors"
	"fmt"
)

// NDEF record header flag bits
const (
	ndefFlagMB      = 0x80 // message begin
	ndefFlagME      = 0x40 // message end
	ndefFlagCF      = 0x20 // chunk flag
	ndefFlagSR      = 0x10 // short record
	ndefFlagIL      = 0x08 // ID length present
	ndefTNFMask     = 0x07
	ndefMaxShortLen = 0xFF
)

// TNF is the type name format of an NDEF record
type TNF byte

// Type name formats defined by the NDEF specification
const (
	TNFEmpty TNF = iota
	TNFWellKnown
	TNFMIMEMedia
	TNFAbsoluteURI
	TNFExternal
	TNFUnknown
	TNFUnchanged
	TNFReserved
)

// NDEF parsing errors
var (
	ErrRecordTruncated = errors.New("NDEF record truncated")
	ErrInvalidURICode  = errors.New("invalid URI prefix code")
)

// uriPrefixes maps the URI identifier code carried in the first payload
// byte of a well-known "U" record to its abbreviation, per the NFC Forum
// URI RTD. Code 0x00 means the URI is stored verbatim.
var uriPrefixes = [36]string{
	"",
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"tel:",
	"mailto:",
	"ftp://anonymous:anonymous@",
	"ftp://ftp.",
	"ftps://",
	"sftp://",
	"smb://",
	"nfs://",
	"ftp://",
	"dav://",
	"news:",
	"telnet://",
	"imap:",
	"rtsp://",
	"urn:",
	"pop:",
	"sip:",
	"sips:",
	"tftp:",
	"btspp://",
	"btl2cap://",
	"btgoep://",
	"tcpobex://",
	"irdaobex://",
	"file://",
	"urn:epc:id:",
	"urn:epc:tag:",
	"urn:epc:pat:",
	"urn:epc:raw:",
	"urn:epc:",
	"urn:nfc:",
}

// NDEFRecord is a view into one record of an NDEF message. Type, ID and
// payload accessors return subslices of the parsed buffer, not copies.
type NDEFRecord struct {
	buffer     []byte
	Flags      byte
	TNF        TNF
	typeOff    int
	typeLen    int
	idOff      int
	idLen      int
	payloadOff int
	payloadLen int
	size       int
}

// Type returns the record type field, e.g. "T" or "U" for well-known types
func (r *NDEFRecord) Type() []byte {
	return r.buffer[r.typeOff : r.typeOff+r.typeLen]
}

// ID returns the record ID field, empty when the IL flag is clear
func (r *NDEFRecord) ID() []byte {
	return r.buffer[r.idOff : r.idOff+r.idLen]
}

// Payload returns the record payload
func (r *NDEFRecord) Payload() []byte {
	return r.buffer[r.payloadOff : r.payloadOff+r.payloadLen]
}

// TotalLength returns the encoded size of the record including its header
func (r *NDEFRecord) TotalLength() int {
	return r.size
}

// IsMessageEnd reports whether the record carries the ME flag
func (r *NDEFRecord) IsMessageEnd() bool {
	return r.Flags&ndefFlagME != 0
}

// MIMEType returns the record type as a string for MIME media records,
// and "" for every other TNF.
func (r *NDEFRecord) MIMEType() string {
	if r.TNF != TNFMIMEMedia {
		return ""
	}
	return string(r.Type())
}

// PayloadString decodes the payload of well-known text and URI records.
// Text records are stripped of their status byte and language code. URI
// records have their prefix code expanded; codes outside the RTD table
// are an error. Any other record yields its payload bytes verbatim.
func (r *NDEFRecord) PayloadString() (string, error) {
	payload := r.Payload()
	if r.TNF != TNFWellKnown || r.typeLen != 1 {
		return string(payload), nil
	}

	switch r.buffer[r.typeOff] {
	case 'T':
		if len(payload) == 0 {
			return "", nil
		}
		// Status byte: bit 7 UTF-16, bits 0-5 language code length
		langLen := int(payload[0] & 0x3F)
		if 1+langLen > len(payload) {
			return "", fmt.Errorf("%w: language code overruns payload", ErrRecordTruncated)
		}
		return string(payload[1+langLen:]), nil
	case 'U':
		if len(payload) == 0 {
			return "", nil
		}
		code := payload[0]
		if int(code) >= len(uriPrefixes) {
			return "", fmt.Errorf("%w: %#02x", ErrInvalidURICode, code)
		}
		return uriPrefixes[code] + string(payload[1:]), nil
	}
	return string(payload), nil
}

// ParseRecord parses a single NDEF record starting at buf[0] and returns
// a view into buf.
func ParseRecord(buf []byte) (*NDEFRecord, error) {
	if len(buf) < 2 {
		return nil, ErrRecordTruncated
	}

	flags := buf[0]
	typeLen := int(buf[1])
	off := 2

	var payloadLen int
	if flags&ndefFlagSR != 0 {
		if off >= len(buf) {
			return nil, ErrRecordTruncated
		}
		payloadLen = int(buf[off])
		off++
	} else {
		if off+4 > len(buf) {
			return nil, ErrRecordTruncated
		}
		payloadLen = int(binary.BigEndian.Uint32(buf[off : off+4]))
		off += 4
	}

	idLen := 0
	if flags&ndefFlagIL != 0 {
		if off >= len(buf) {
			return nil, ErrRecordTruncated
		}
		idLen = int(buf[off])
		off++
	}

	typeOff := off
	idOff := typeOff + typeLen
	payloadOff := idOff + idLen
	end := payloadOff + payloadLen
	if end > len(buf) {
		return nil, fmt.Errorf("%w: record needs %d bytes, have %d", ErrRecordTruncated, end, len(buf))
	}

	return &NDEFRecord{
		buffer:     buf,
		Flags:      flags,
		TNF:        TNF(flags & ndefTNFMask),
		typeOff:    typeOff,
		typeLen:    typeLen,
		idOff:      idOff,
		idLen:      idLen,
		payloadOff: payloadOff,
		payloadLen: payloadLen,
		size:       end,
	}, nil
}

// MessageLength returns the number of records in the message held in buf.
// An empty buffer and a first record carrying the ME flag both count as a
// one-record message.
func MessageLength(buf []byte) int {
	if len(buf) == 0 {
		return 1
	}

	count := 1
	off := 0
	for {
		if buf[off]&ndefFlagME != 0 {
			return count
		}
		rec, err := ParseRecord(buf[off:])
		if err != nil {
			return count
		}
		off += rec.TotalLength()
		if off >= len(buf) {
			return count
		}
		count++
	}
}

// ParseMessage parses consecutive records from buf until a record carries
// the ME flag or the buffer is exhausted. When a record fails to parse,
// the records decoded before it are returned alongside the error.
func ParseMessage(buf []byte) ([]*NDEFRecord, error) {
	var records []*NDEFRecord
	off := 0
	for off < len(buf) {
		rec, err := ParseRecord(buf[off:])
		if err != nil {
			return records, fmt.Errorf("record %d: %w", len(records), err)
		}
		records = append(records, rec)
		if rec.IsMessageEnd() {
			break
		}
		off += rec.TotalLength()
	}
	if len(records) == 0 {
		return nil, ErrNoNDEF
	}
	return records, nil
}

// CreateRecord encodes a single NDEF record. The short-record form is
// used whenever the payload fits, and the ID field is emitted only when
// id is non-empty. The MB and ME flags are left clear; callers composing
// a message set them on the first and last record themselves.
func CreateRecord(tnf TNF, recordType, id, payload []byte) ([]byte, error) {
	if tnf > TNFReserved {
		return nil, fmt.Errorf("%w: TNF %#02x", ErrInvalidParameter, byte(tnf))
	}
	if len(recordType) > 0xFF {
		return nil, fmt.Errorf("%w: type field too long", ErrInvalidParameter)
	}
	if len(id) > 0xFF {
		return nil, fmt.Errorf("%w: ID field too long", ErrInvalidParameter)
	}

	flags := byte(tnf)
	short := len(payload) <= ndefMaxShortLen
	if short {
		flags |= ndefFlagSR
	}
	if len(id) > 0 {
		flags |= ndefFlagIL
	}

	size := 2 + len(recordType) + len(id) + len(payload)
	if short {
		size++
	} else {
		size += 4
	}
	if len(id) > 0 {
		size++
	}

	rec := make([]byte, 0, size)
	rec = append(rec, flags, byte(len(recordType)))
	if short {
		rec = append(rec, byte(len(payload)))
	} else {
		rec = binary.BigEndian.AppendUint32(rec, uint32(len(payload)))
	}
	if len(id) > 0 {
		rec = append(rec, byte(len(id)))
	}
	rec = append(rec, recordType...)
	rec = append(rec, id...)
	rec = append(rec, payload...)
	return rec, nil
}

// CreateTextRecord encodes a well-known "T" record in UTF-8 with the
// given IANA language code.
func CreateTextRecord(text, lang string) ([]byte, error) {
	if len(lang) > 0x3F {
		return nil, fmt.Errorf("%w: language code too long", ErrInvalidParameter)
	}
	payload := make([]byte, 0, 1+len(lang)+len(text))
	payload = append(payload, byte(len(lang)))
	payload = append(payload, lang...)
	payload = append(payload, text...)
	return CreateRecord(TNFWellKnown, []byte{'T'}, nil, payload)
}

// CreateURIRecord encodes a well-known "U" record, abbreviating the URI
// with the longest matching RTD prefix.
func CreateURIRecord(uri string) ([]byte, error) {
	code := byte(0)
	rest := uri
	best := 0
	for i := 1; i < len(uriPrefixes); i++ {
		p := uriPrefixes[i]
		if len(p) > best && len(uri) >= len(p) && uri[:len(p)] == p {
			best = len(p)
			code = byte(i)
		}
	}
	if best > 0 {
		rest = uri[best:]
	}

	payload := make([]byte, 0, 1+len(rest))
	payload = append(payload, code)
	payload = append(payload, rest...)
	return CreateRecord(TNFWellKnown, []byte{'U'}, nil, payload)
}
