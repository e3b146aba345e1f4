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

package pntest

import "fmt"

// VirtualNTAG emulates NTAG21x memory behind the InDataExchange envelope
type VirtualNTAG struct {
	pages    [][4]byte
	uid      []byte
	lastPage int
}

// capability container size bytes by model
var ccSizeByModel = map[string]struct {
	size     byte
	lastPage int
}{
	"NTAG213": {0x12, 0x27},
	"NTAG215": {0x3E, 0x81},
	"NTAG216": {0x6D, 0xE1},
}

// NewVirtualNTAG creates a blank tag of the given model ("NTAG213",
// "NTAG215" or "NTAG216") with a formatted capability container and an
// empty-NDEF TLV in user memory.
func NewVirtualNTAG(model string) (*VirtualNTAG, error) {
	cc, ok := ccSizeByModel[model]
	if !ok {
		return nil, fmt.Errorf("unknown model %q", model)
	}

	t := &VirtualNTAG{
		pages:    make([][4]byte, cc.lastPage+1+4), // user area plus config pages
		uid:      []byte{0x04, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66},
		lastPage: cc.lastPage,
	}

	// Pages 0-2 hold UID and internal bytes.
	copy(t.pages[0][:], t.uid[:3])
	copy(t.pages[1][:], t.uid[3:])

	t.pages[3] = [4]byte{0xE1, 0x10, cc.size, 0x00}

	// Empty NDEF TLV so a freshly formatted tag parses.
	t.pages[4] = [4]byte{0x03, 0x00, 0xFE, 0x00}
	return t, nil
}

// UID returns the tag's 7-byte UID
func (t *VirtualNTAG) UID() []byte {
	return t.uid
}

// LoadUserData copies data into user memory starting at page 4
func (t *VirtualNTAG) LoadUserData(data []byte) {
	for i := 0; i < len(data); i += 4 {
		page := 4 + i/4
		if page >= len(t.pages) {
			return
		}
		var p [4]byte
		copy(p[:], data[i:])
		t.pages[page] = p
	}
}

// UserData returns a copy of the user memory area
func (t *VirtualNTAG) UserData() []byte {
	out := make([]byte, 0, (t.lastPage-4+1)*4)
	for page := 4; page <= t.lastPage; page++ {
		out = append(out, t.pages[page][:]...)
	}
	return out
}

// HandleDataExchange emulates the tag's reply to the data relayed through
// InDataExchange and wraps it in a response payload. Unknown commands get
// a nonzero status, like a real tag timing out.
func (t *VirtualNTAG) HandleDataExchange(args []byte) ([]byte, error) {
	// args: [Tg cmd ...]
	if len(args) < 2 || args[0] != 0x01 {
		return BuildDataExchangeError(0x27), nil
	}

	switch args[1] {
	case 0x30: // READ
		if len(args) != 3 {
			return BuildDataExchangeError(0x27), nil
		}
		start := int(args[2])
		block := make([]byte, 0, 16)
		for i := 0; i < 4; i++ {
			page := (start + i) % len(t.pages) // reads wrap around
			block = append(block, t.pages[page][:]...)
		}
		return BuildDataExchangeResponse(block), nil
	case 0xA2: // WRITE
		if len(args) != 7 {
			return BuildDataExchangeError(0x27), nil
		}
		page := int(args[2])
		if page >= len(t.pages) {
			return BuildDataExchangeError(0x27), nil
		}
		var p [4]byte
		copy(p[:], args[3:7])
		t.pages[page] = p
		return BuildDataExchangeResponse(nil), nil
	default:
		return BuildDataExchangeError(0x27), nil
	}
}
