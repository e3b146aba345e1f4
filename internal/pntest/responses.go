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

// Package pntest builds canned PN532 response payloads for tests. All
// payloads are shaped the way Transport.SendCommand returns them, with
// the response code at index 0 and no frame identifier.
package pntest

// BuildFirmwareVersionResponse returns a GetFirmwareVersion response for
// a PN532 v1.6 supporting ISO/IEC 14443 A and B and ISO18092.
func BuildFirmwareVersionResponse() []byte {
	return []byte{0x03, 0x32, 0x01, 0x06, 0x07}
}

// BuildSAMConfigurationResponse returns a bare SAMConfiguration ack
func BuildSAMConfigurationResponse() []byte {
	return []byte{0x15}
}

// BuildRFConfigurationResponse returns a bare RFConfiguration ack
func BuildRFConfigurationResponse() []byte {
	return []byte{0x33}
}

// BuildTagDetectionResponse returns an InListPassiveTarget response for
// one Type A target with the given UID in card slot 1.
func BuildTagDetectionResponse(uid []byte) []byte {
	resp := []byte{
		0x4B,       // response code
		0x01,       // NbTg
		0x01,       // Tg
		0x00, 0x04, // ATQA
		0x00,           // SAK
		byte(len(uid)), // UID length
	}
	return append(resp, uid...)
}

// BuildNoTagResponse returns an InListPassiveTarget response reporting no
// targets in the field.
func BuildNoTagResponse() []byte {
	return []byte{0x4B, 0x00}
}

// BuildDataExchangeResponse wraps data in a successful InDataExchange
// response.
func BuildDataExchangeResponse(data []byte) []byte {
	resp := []byte{0x41, 0x00} // response code, status OK
	return append(resp, data...)
}

// BuildDataExchangeError returns an InDataExchange response carrying the
// given status code.
func BuildDataExchangeError(status byte) []byte {
	return []byte{0x41, status}
}

// BuildDiagnoseEcho returns a Diagnose response echoing the command
// arguments, the shape of a passing communication line test.
func BuildDiagnoseEcho(args []byte) []byte {
	return append([]byte{0x01}, args...)
}

// BuildPowerDownResponse returns a PowerDown response with the given
// status code.
func BuildPowerDownResponse(status byte) []byte {
	return []byte{0x17, status}
}
