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
	"time"
)

// DetectedTag describes a passive target activated in card slot 1
type DetectedTag struct {
	DetectedAt time.Time
	UID        []byte
	ATQA       uint16
	SAK        byte
}

// UIDString returns the UID as lowercase hex
func (t *DetectedTag) UIDString() string {
	return fmt.Sprintf("%x", t.UID)
}

// DetectPassiveTarget activates at most one passive target at the given
// baud rate and returns its identification data. When no tag enters the
// field before the transport timeout elapses it returns ErrTagNotFound.
//
// Only card slot 1 is used. The PN532 can track two targets, but a single
// slot keeps InDataExchange addressing unambiguous.
func (d *Device) DetectPassiveTarget(baud BaudRate) (*DetectedTag, error) {
	args := []byte{0x01, byte(baud)} // MaxTg = 1
	resp, err := d.sendCommand(cmdInListPassiveTarget, args)
	if err != nil {
		return nil, fmt.Errorf("InListPassiveTarget: %w", err)
	}

	// resp: [NbTg Tg ATQA(2) SAK UIDLen UID...]
	if len(resp) < 1 || resp[0] == 0 {
		return nil, ErrTagNotFound
	}
	if len(resp) < 6 {
		return nil, fmt.Errorf("InListPassiveTarget: %w: %d bytes", ErrCommunicationFailed, len(resp))
	}

	uidLen := int(resp[5])
	if len(resp) < 6+uidLen {
		return nil, fmt.Errorf("InListPassiveTarget: %w: truncated UID", ErrCommunicationFailed)
	}

	uid := make([]byte, uidLen)
	copy(uid, resp[6:6+uidLen])

	tag := &DetectedTag{
		ATQA:       binary.BigEndian.Uint16(resp[2:4]),
		SAK:        resp[4],
		UID:        uid,
		DetectedAt: time.Now(),
	}
	debugf("detected tag UID=%s ATQA=%#04x SAK=%#02x", tag.UIDString(), tag.ATQA, tag.SAK)
	return tag, nil
}

// WaitForTarget polls DetectPassiveTarget until a tag arrives or timeout
// elapses. A zero timeout polls exactly once.
func (d *Device) WaitForTarget(baud BaudRate, timeout time.Duration) (*DetectedTag, error) {
	deadline := time.Now().Add(timeout)
	for {
		tag, err := d.DetectPassiveTarget(baud)
		if err == nil {
			return tag, nil
		}
		if !IsRetryable(err) && !errors.Is(err, ErrTagNotFound) {
			return nil, err
		}
		if timeout == 0 || !time.Now().Before(deadline) {
			return nil, ErrTagNotFound
		}
	}
}
