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
	"errors"
	"fmt"
	"time"
)

// readBufferSize comfortably holds an NTAG216 user area plus the slack
// block ReadUserPages needs.
const readBufferSize = 1024

// TagPresent reports whether a Type A tag enters the field within
// timeout. The detected UID is discarded; use WaitForTarget to keep it.
func (d *Device) TagPresent(timeout time.Duration) bool {
	_, err := d.WaitForTarget(Baud106kbitTypeA, timeout)
	return err == nil
}

// ReadTagText waits up to timeout for a Type A tag, dumps its user
// memory and returns the decoded string of the first NDEF record. The
// whole NDEF message is located through its TLV wrapper, so stray data
// before or after the message is ignored. A zero timeout probes the
// field once.
func (d *Device) ReadTagText(timeout time.Duration) (string, error) {
	tag, err := d.WaitForTarget(Baud106kbitTypeA, timeout)
	if err != nil {
		return "", err
	}
	debugf("reading tag %s", tag.UIDString())

	ntag := NewNTAG(d)
	if err := ntag.DetectModel(); err != nil {
		return "", err
	}

	buf := make([]byte, readBufferSize)
	n, err := ntag.ReadUserPages(buf)
	if err != nil {
		return "", err
	}

	tlv, err := LocateTLV(buf[:n])
	if err != nil {
		return "", err
	}

	records, err := ParseMessage(tlv.Value())
	if len(records) == 0 {
		return "", err
	}
	return records[0].PayloadString()
}

// WriteTagText waits up to timeout for a Type A tag and writes text as a
// one-record NDEF message wrapped in a TLV block. The rest of the user
// area is zero-padded, which also erases any previous message.
func (d *Device) WriteTagText(timeout time.Duration, text string) error {
	tag, err := d.WaitForTarget(Baud106kbitTypeA, timeout)
	if err != nil {
		return err
	}
	debugf("writing tag %s", tag.UIDString())

	ntag := NewNTAG(d)
	if err := ntag.DetectModel(); err != nil && !errors.Is(err, ErrUnknownTagModel) {
		// An unrecognized capability container falls back to NTAG213
		// bounds, the smallest of the family.
		return err
	}

	rec, err := CreateTextRecord(text, "en")
	if err != nil {
		return err
	}
	// A standalone record is both the beginning and the end of its message.
	rec[0] |= ndefFlagMB | ndefFlagME

	capacity := ntag.Model().UserCapacity()
	if capacity == 0 {
		capacity = NTAG213.UserCapacity()
	}
	if len(rec)+5 > capacity {
		return fmt.Errorf("%w: message needs %d bytes, tag holds %d",
			ErrDataTooLarge, len(rec)+5, capacity)
	}

	buf := make([]byte, capacity)
	if _, err := EncodeTLV(buf, rec); err != nil {
		return err
	}
	return ntag.WriteUserData(buf)
}
