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

// Package piconfc drives the NXP PN532 NFC front end as an initiator for
// reading and writing NTAG21x tags.
//
// The package is layered. Transports (see the transport/uart and
// transport/i2c subpackages) own the link layer: frame construction,
// ready polling, ACK verification and response validation. Device wraps a
// transport with the PN532 command set. NTAG adds page-level tag memory
// access over InDataExchange, and the NDEF and TLV codecs decode what the
// pages hold.
//
// Typical use:
//
//	t, err := uart.New("/dev/ttyUSB0")
//	if err != nil {
//		log.Fatal(err)
//	}
//	dev, err := piconfc.New(t)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	if err := dev.Init(); err != nil {
//		log.Fatal(err)
//	}
//	text, err := dev.ReadTagText(30 * time.Second)
package piconfc
