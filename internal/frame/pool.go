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

package frame

import "sync"

// Transports stage every outbound and inbound frame through pooled
// buffers instead of a per-device scratch area, so a device session never
// exposes shared mutable state.

const (
	smallBufferSize = 16
	largeBufferSize = MaxFrameDataLength + FrameOverhead + 1 // frame + ready byte
)

var smallPool = sync.Pool{
	New: func() any {
		buf := make([]byte, smallBufferSize)
		return &buf
	},
}

var largePool = sync.Pool{
	New: func() any {
		buf := make([]byte, largeBufferSize)
		return &buf
	},
}

// GetBuffer returns a zeroed buffer of at least size bytes, sliced to size.
func GetBuffer(size int) []byte {
	if size <= smallBufferSize {
		return GetSmallBuffer(size)
	}
	if size > largeBufferSize {
		return make([]byte, size)
	}
	buf := *largePool.Get().(*[]byte)
	clear(buf)
	return buf[:size]
}

// GetSmallBuffer returns a zeroed buffer for short reads such as ready
// status bytes and ACK frames.
func GetSmallBuffer(size int) []byte {
	if size > smallBufferSize {
		return GetBuffer(size)
	}
	buf := *smallPool.Get().(*[]byte)
	clear(buf)
	return buf[:size]
}

// PutBuffer returns a buffer obtained from GetBuffer or GetSmallBuffer to
// its pool. Callers must not retain the slice afterwards.
func PutBuffer(buf []byte) {
	switch cap(buf) {
	case smallBufferSize:
		buf = buf[:smallBufferSize]
		smallPool.Put(&buf)
	case largeBufferSize:
		buf = buf[:largeBufferSize]
		largePool.Put(&buf)
	}
}
