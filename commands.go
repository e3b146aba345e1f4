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

// PN532 command codes (host to PN532). The chip answers each command with
// a response code of command+1.
const (
	cmdDiagnose            = 0x00
	cmdGetFirmwareVersion  = 0x02
	cmdSAMConfiguration    = 0x14
	cmdPowerDown           = 0x16
	cmdRFConfiguration     = 0x32
	cmdInDataExchange      = 0x40
	cmdInListPassiveTarget = 0x4A
)

// Diagnose test numbers
const (
	diagnoseCommLineTest = 0x00
)

// PowerDown wakeup source bits: HSU, SPI and I2C host activity
const powerDownWakeupHost = 0xB0

// RFConfiguration items
const (
	rfItemMaxRetries = 0x05 // MxRtyATR, MxRtyPSL, MxRtyPassiveActivation
)

// SAM modes
const (
	samModeNormal = 0x01
)

// BaudRate selects the initiator modulation for InListPassiveTarget
type BaudRate byte

const (
	// Baud106kbitTypeA selects ISO/IEC 14443 Type A at 106 kbit/s
	Baud106kbitTypeA BaudRate = 0x00
	// Baud212kbitFeliCa selects FeliCa polling at 212 kbit/s
	Baud212kbitFeliCa BaudRate = 0x01
	// Baud424kbitFeliCa selects FeliCa polling at 424 kbit/s
	Baud424kbitFeliCa BaudRate = 0x02
	// Baud106kbitTypeB selects ISO/IEC 14443-3 Type B at 106 kbit/s
	Baud106kbitTypeB BaudRate = 0x03
	// Baud106kbitJewel selects Innovision Jewel tags at 106 kbit/s
	Baud106kbitJewel BaudRate = 0x04
)
