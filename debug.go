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
	"io"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.New(io.Discard)
)

// SetLogger installs a zerolog logger for protocol-level debug output.
// By default all output is discarded. Safe to call concurrently with
// device operations.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func debugf(format string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	l.Debug().Msgf(format, args...)
}

// debugFrame logs a raw frame as hex alongside the operation that
// produced it.
func debugFrame(op string, data []byte) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	l.Debug().Str("op", op).Hex("frame", data).Msg("pn532 frame")
}
