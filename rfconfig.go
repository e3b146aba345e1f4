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

// SetPassiveActivationRetries configures how many times the chip retries
// passive target activation before InListPassiveTarget gives up. 0xFF
// means retry forever, which shifts timeout control to the host side.
// ATR retries stay at the maximum and PSL retries at one.
func (d *Device) SetPassiveActivationRetries(retries byte) error {
	args := []byte{rfItemMaxRetries, 0xFF, 0x01, retries}
	resp, err := d.sendCommand(cmdRFConfiguration, args)
	if err != nil {
		return fmt.Errorf("RFConfiguration: %w", err)
	}
	if len(resp) != 0 {
		return fmt.Errorf("RFConfiguration: %w: %d trailing bytes", ErrUnexpectedResponse, len(resp))
	}
	return nil
}
