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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateTLV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
		want []byte
	}{
		{
			name: "minimal block",
			buf:  []byte{0x03, 0x02, 0xAA, 0xBB, 0xFE},
			want: []byte{0xAA, 0xBB},
		},
		{
			name: "empty value",
			buf:  []byte{0x03, 0x00, 0xFE},
			want: []byte{},
		},
		{
			name: "leading lock control TLV",
			buf:  []byte{0x01, 0x03, 0xA0, 0x0C, 0x34, 0x03, 0x02, 0xAA, 0xBB, 0xFE},
			want: []byte{0xAA, 0xBB},
		},
		{
			name: "trailing bytes after terminator",
			buf:  []byte{0x03, 0x01, 0x42, 0xFE, 0x00, 0x00},
			want: []byte{0x42},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tlv, err := LocateTLV(tt.buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tlv.Value())
		})
	}
}

func TestLocateTLVRetriesFalseTag(t *testing.T) {
	t.Parallel()

	// 0x03 inside unrelated data looks like a TLV whose implied
	// terminator fails, so the scan must move past it to the real block.
	buf := []byte{
		0x03, 0x05, 0x01, 0x02, // false candidate: buf[7] would need to be 0xFE
		0x03, 0x02, 0xAA, 0xBB, 0xFE,
	}
	tlv, err := LocateTLV(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, tlv.Value())
}

func TestLocateTLVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "empty buffer", buf: nil},
		{name: "no tag byte", buf: []byte{0x00, 0x01, 0x02}},
		{name: "tag at end", buf: []byte{0x00, 0x03}},
		{name: "length overruns buffer", buf: []byte{0x03, 0x10, 0xAA}},
		{name: "missing terminator", buf: []byte{0x03, 0x02, 0xAA, 0xBB, 0x00}},
		{name: "extended length truncated", buf: []byte{0x03, 0xFF, 0x01}},
		{name: "extended missing terminator", buf: append([]byte{0x03, 0xFF, 0x01, 0x00}, make([]byte, 257)...)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LocateTLV(tt.buf)
			assert.ErrorIs(t, err, ErrNoNDEF)
		})
	}
}

// Length form boundaries: 254 takes the short form, 255 and up the
// extended three-byte form.
func TestTLVRoundTripLengthBoundaries(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 254, 255, 256, 1000} {
		data := bytes.Repeat([]byte{0x37}, size)
		dst := make([]byte, size+5)

		n, err := EncodeTLV(dst, data)
		require.NoError(t, err, "size %d", size)

		if size < 255 {
			assert.Equal(t, size+3, n, "short form size %d", size)
			assert.Equal(t, byte(size), dst[1])
		} else {
			assert.Equal(t, size+5, n, "extended form size %d", size)
			assert.Equal(t, byte(0xFF), dst[1])
			assert.Equal(t, byte(size>>8), dst[2])
			assert.Equal(t, byte(size&0xFF), dst[3])
		}

		tlv, err := LocateTLV(dst[:n])
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, data, tlv.Value(), "size %d", size)
	}
}

func TestEncodeTLVBufferTooSmall(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x02, 0x03}

	// The short form would fit in 6 bytes, but the contract demands
	// worst-case room regardless of form.
	_, err := EncodeTLV(make([]byte, len(data)+4), data)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	n, err := EncodeTLV(make([]byte, len(data)+5), data)
	require.NoError(t, err)
	assert.Equal(t, len(data)+3, n)
}

func TestEncodeTLVTooLarge(t *testing.T) {
	t.Parallel()

	data := make([]byte, 0x10000)
	_, err := EncodeTLV(make([]byte, len(data)+5), data)
	assert.ErrorIs(t, err, ErrDataTooLarge)
}
