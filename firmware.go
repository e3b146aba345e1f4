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

import "fmt"

// FirmwareVersion holds the GetFirmwareVersion response fields
type FirmwareVersion struct {
	IC       byte // IC type, 0x32 for PN532
	Version  byte
	Revision byte
	Support  byte // bitfield: ISO18092, ISO/IEC 14443 A and B
}

// SupportsISO14443A reports whether the chip supports ISO/IEC 14443 Type A
func (f *FirmwareVersion) SupportsISO14443A() bool {
	return f.Support&0x01 != 0
}

// String formats the version the way NXP documents it, e.g. "PN532 v1.6"
func (f *FirmwareVersion) String() string {
	return fmt.Sprintf("PN5%02X v%d.%d", f.IC, f.Version, f.Revision)
}

// GetFirmwareVersion queries the chip for its IC type and firmware
// version. This is the cheapest liveness probe the PN532 offers.
func (d *Device) GetFirmwareVersion() (*FirmwareVersion, error) {
	resp, err := d.sendCommand(cmdGetFirmwareVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("GetFirmwareVersion: %w", err)
	}
	if len(resp) < 4 {
		return nil, fmt.Errorf("GetFirmwareVersion: %w: %d bytes", ErrCommunicationFailed, len(resp))
	}

	return &FirmwareVersion{
		IC:       resp[0],
		Version:  resp[1],
		Revision: resp[2],
		Support:  resp[3],
	}, nil
}
