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
	"fmt"
	"sync"
	"time"
)

// MockTransport is a Transport for tests. Responses are payloads as
// SendCommand returns them, with the response code at index 0.
type MockTransport struct {
	mu        sync.Mutex
	responses map[byte][]byte
	errors    map[byte]error
	handlers  map[byte]func(args []byte) ([]byte, error)
	calls     []MockCall
	timeout   time.Duration
	connected bool
}

// MockCall records one SendCommand invocation
type MockCall struct {
	Cmd  byte
	Args []byte
}

// NewMockTransport creates a connected mock with no canned responses
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses: make(map[byte][]byte),
		errors:    make(map[byte]error),
		handlers:  make(map[byte]func(args []byte) ([]byte, error)),
		connected: true,
	}
}

// SetResponse sets the payload returned for cmd
func (m *MockTransport) SetResponse(cmd byte, response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = response
}

// SetError sets the error returned for cmd
func (m *MockTransport) SetError(cmd byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[cmd] = err
}

// SetHandler installs a function computing the response for cmd from its
// arguments. Handlers take precedence over canned responses.
func (m *MockTransport) SetHandler(cmd byte, fn func(args []byte) ([]byte, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[cmd] = fn
}

// Calls returns the recorded SendCommand invocations
func (m *MockTransport) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// SendCommand implements Transport
func (m *MockTransport) SendCommand(cmd byte, args []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil, ErrDeviceNotFound
	}

	argsCopy := make([]byte, len(args))
	copy(argsCopy, args)
	m.calls = append(m.calls, MockCall{Cmd: cmd, Args: argsCopy})

	if fn, ok := m.handlers[cmd]; ok {
		return fn(argsCopy)
	}
	if err, ok := m.errors[cmd]; ok {
		return nil, err
	}
	if resp, ok := m.responses[cmd]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("%w: no mock response for command %#02x", ErrCommunicationFailed, cmd)
}

// Close implements Transport
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// SetTimeout implements Transport
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// IsConnected implements Transport
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Type implements Transport
func (m *MockTransport) Type() TransportType {
	return TransportMock
}
