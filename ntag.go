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

// NTAG memory commands relayed through InDataExchange
const (
	ntagCmdRead  = 0x30 // returns 4 pages (16 bytes)
	ntagCmdWrite = 0xA2 // writes 1 page (4 bytes)

	// FAST_READ (0x3A) takes a page range, so its response length depends
	// on its arguments. The InDataExchange envelope gives the PN532 no way
	// to size that read, so the command is reserved here and unsupported.
	ntagCmdFastRead = 0x3A
)

const (
	// PageSize is the NTAG2xx page size in bytes
	PageSize = 4
	// BlockSize is the number of bytes a READ command returns
	BlockSize = 16

	ntagFirstUserPage = 4
	ntagCCPage        = 3
)

// NTAGModel identifies the NTAG21x variant by capacity
type NTAGModel int

// Known NTAG models
const (
	NTAGUnknown NTAGModel = iota
	NTAG213
	NTAG215
	NTAG216
)

// String returns the model name
func (m NTAGModel) String() string {
	switch m {
	case NTAG213:
		return "NTAG213"
	case NTAG215:
		return "NTAG215"
	case NTAG216:
		return "NTAG216"
	default:
		return "unknown"
	}
}

// lastUserPage returns the final user memory page for the model, or 0 for
// an unknown model.
func (m NTAGModel) lastUserPage() byte {
	switch m {
	case NTAG213:
		return 0x27
	case NTAG215:
		return 0x81
	case NTAG216:
		return 0xE1
	default:
		return 0
	}
}

// UserCapacity returns the user memory size in bytes, or 0 for an unknown
// model.
func (m NTAGModel) UserCapacity() int {
	last := m.lastUserPage()
	if last == 0 {
		return 0
	}
	return (int(last) - ntagFirstUserPage + 1) * PageSize
}

// NTAG provides page-level access to an NTAG21x tag activated in card
// slot 1
type NTAG struct {
	device *Device
	model  NTAGModel
}

// NewNTAG wraps an activated tag for NTAG memory access. The model starts
// unknown; DetectModel reads the capability container to identify it.
func NewNTAG(device *Device) *NTAG {
	return &NTAG{device: device}
}

// Model returns the detected model, or NTAGUnknown before DetectModel
func (t *NTAG) Model() NTAGModel {
	return t.model
}

// DetectModel reads the capability container and identifies the tag model
// from its size byte. Unrecognized size bytes leave the model unknown and
// return ErrUnknownTagModel.
func (t *NTAG) DetectModel() error {
	block, err := t.ReadBlock(ntagCCPage)
	if err != nil {
		return fmt.Errorf("capability container read failed: %w", err)
	}

	// CC layout: [magic version size access], size in units of 8 bytes
	switch block[2] {
	case 0x12:
		t.model = NTAG213
	case 0x3E:
		t.model = NTAG215
	case 0x6D:
		t.model = NTAG216
	default:
		t.model = NTAGUnknown
		return fmt.Errorf("%w: CC size byte %#02x", ErrUnknownTagModel, block[2])
	}

	debugf("detected %s", t.model)
	return nil
}

// ReadBlock reads 4 consecutive pages starting at page and returns all
// 16 bytes. Reads past the end of memory are answered by the tag with
// wrapped or zero-padded data, not an error.
func (t *NTAG) ReadBlock(page byte) ([]byte, error) {
	resp, err := t.device.DataExchange([]byte{ntagCmdRead, page})
	if err != nil {
		return nil, fmt.Errorf("read page %#02x: %w", page, err)
	}
	if len(resp) != BlockSize {
		return nil, fmt.Errorf("read page %#02x: %w: got %d bytes, want %d",
			page, ErrCommunicationFailed, len(resp), BlockSize)
	}
	return resp, nil
}

// ReadPage reads a single 4-byte page
func (t *NTAG) ReadPage(page byte) ([]byte, error) {
	block, err := t.ReadBlock(page)
	if err != nil {
		return nil, err
	}
	return block[:PageSize], nil
}

// ReadUserPages fills buf with the tag's user memory, reading one 16-byte
// block at a time from page 4 up to the model's last user page. It stops
// early when the next block would not fit in buf, so buf should be sized
// with a full block of slack. Returns the number of bytes read.
func (t *NTAG) ReadUserPages(buf []byte) (int, error) {
	last := t.model.lastUserPage()
	if last == 0 {
		return 0, ErrUnknownTagModel
	}

	head := 0
	for page := byte(ntagFirstUserPage); page <= last; page += BlockSize / PageSize {
		if head+BlockSize >= len(buf) {
			break
		}
		block, err := t.ReadBlock(page)
		if err != nil {
			return head, err
		}
		copy(buf[head:], block)
		head += BlockSize
	}
	return head, nil
}

// WritePage writes exactly one 4-byte page
func (t *NTAG) WritePage(page byte, data []byte) error {
	if len(data) != PageSize {
		return fmt.Errorf("%w: page data must be %d bytes, got %d", ErrInvalidParameter, PageSize, len(data))
	}
	args := make([]byte, 0, 2+PageSize)
	args = append(args, ntagCmdWrite, page)
	args = append(args, data...)
	if _, err := t.device.DataExchange(args); err != nil {
		return fmt.Errorf("write page %#02x: %w", page, err)
	}
	return nil
}

// WriteUserData writes data page by page across the entire user area,
// from page 4 through the model's last user page. data must cover the
// whole area; use the model's UserCapacity and pad the remainder. A tag
// with an unknown model is written with NTAG213 bounds, the smallest of
// the family.
func (t *NTAG) WriteUserData(data []byte) error {
	last := t.model.lastUserPage()
	if last == 0 {
		last = NTAG213.lastUserPage()
	}

	head := 0
	for page := byte(ntagFirstUserPage); page <= last; page++ {
		if head+PageSize > len(data) {
			return fmt.Errorf("%w: data ends at page %#02x, user area ends at %#02x",
				ErrInvalidParameter, page, last)
		}
		if err := t.WritePage(page, data[head:head+PageSize]); err != nil {
			return err
		}
		head += PageSize
	}
	return nil
}

// FastRead is reserved. The NTAG FAST_READ command cannot be carried over
// InDataExchange because the PN532 cannot size its variable-length reply.
func (t *NTAG) FastRead(_, _ byte) ([]byte, error) {
	return nil, fmt.Errorf("FAST_READ: %w", ErrNotSupported)
}
