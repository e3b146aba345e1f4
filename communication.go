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
	"bytes"
	"fmt"
)

// DataExchange relays data to the target activated in card slot 1 through
// InDataExchange and returns the target's reply. The chip's status byte is
// checked before any payload is handed back; a nonzero status surfaces as
// ErrDeviceStatus with the code attached.
func (d *Device) DataExchange(data []byte) ([]byte, error) {
	args := make([]byte, 0, 1+len(data))
	args = append(args, 0x01) // card slot 1
	args = append(args, data...)

	resp, err := d.sendCommand(cmdInDataExchange, args)
	if err != nil {
		return nil, fmt.Errorf("InDataExchange: %w", err)
	}
	if len(resp) < 1 {
		return nil, fmt.Errorf("InDataExchange: %w: missing status byte", ErrCommunicationFailed)
	}
	if resp[0] != 0x00 {
		return nil, fmt.Errorf("InDataExchange: %w: %#02x", ErrDeviceStatus, resp[0])
	}
	return resp[1:], nil
}

// Diagnose runs the communication line test. The chip echoes the test
// payload back through the host interface; any difference means the link
// corrupts data in at least one direction.
func (d *Device) Diagnose() error {
	args := []byte{diagnoseCommLineTest, 'g', 'o', '-', 'p', 'i', 'c', 'o', 'n', 'f', 'c'}

	resp, err := d.sendCommand(cmdDiagnose, args)
	if err != nil {
		return fmt.Errorf("Diagnose: %w", err)
	}
	if !bytes.Equal(resp, args) {
		return fmt.Errorf("Diagnose: %w: echo mismatch", ErrUnexpectedResponse)
	}
	return nil
}

// PowerDown puts the PN532 into its low-power state. Traffic from the
// host interface wakes it again; allow roughly a millisecond before the
// next command.
func (d *Device) PowerDown() error {
	resp, err := d.sendCommand(cmdPowerDown, []byte{powerDownWakeupHost})
	if err != nil {
		return fmt.Errorf("PowerDown: %w", err)
	}
	if len(resp) < 1 {
		return fmt.Errorf("PowerDown: %w: missing status byte", ErrCommunicationFailed)
	}
	if resp[0] != 0x00 {
		return fmt.Errorf("PowerDown: %w: %#02x", ErrDeviceStatus, resp[0])
	}
	return nil
}
