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

// SAMConfiguration puts the security access module in normal mode with a
// one second virtual card timeout and the IRQ pin unused. Required once
// after power-up before any RF commands.
func (d *Device) SAMConfiguration() error {
	// mode 0x01 = normal, timeout 0x14 = 20 * 50ms = 1s, no IRQ
	args := []byte{samModeNormal, 0x14, 0x00}
	if _, err := d.sendCommand(cmdSAMConfiguration, args); err != nil {
		return fmt.Errorf("SAMConfiguration: %w", err)
	}
	return nil
}
