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
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "transport timeout retryable", err: ErrTransportTimeout, want: true},
		{name: "transport read retryable", err: ErrTransportRead, want: true},
		{name: "transport write retryable", err: ErrTransportWrite, want: true},
		{name: "transport not ready retryable", err: ErrTransportNotReady, want: true},
		{name: "communication failed retryable", err: ErrCommunicationFailed, want: true},
		{name: "no ACK retryable", err: ErrNoACK, want: true},
		{name: "frame corrupted retryable", err: ErrFrameCorrupted, want: true},
		{name: "checksum mismatch retryable", err: ErrChecksumMismatch, want: true},
		{name: "device not found not retryable", err: ErrDeviceNotFound, want: false},
		{name: "tag not found not retryable", err: ErrTagNotFound, want: false},
		{name: "data too large not retryable", err: ErrDataTooLarge, want: false},
		{name: "invalid parameter not retryable", err: ErrInvalidParameter, want: false},
		{name: "unknown model not retryable", err: ErrUnknownTagModel, want: false},
		{
			name: "fmt-wrapped retryable error stays retryable",
			err:  fmt.Errorf("outer: %w", ErrNoACK),
			want: true,
		},
		{
			name: "string-copied error is not recognized",
			err:  errors.New("outer: " + ErrTransportTimeout.Error()),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable_TransportError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		transport *TransportError
		name      string
		want      bool
	}{
		{
			name: "transport error retryable=true",
			transport: &TransportError{
				Err:       errors.New("test error"),
				Op:        "read",
				Port:      "/dev/ttyUSB0",
				Type:      ErrorTypeTransient,
				Retryable: true,
			},
			want: true,
		},
		{
			name: "transport error retryable=false",
			transport: &TransportError{
				Err:       errors.New("test error"),
				Op:        "write",
				Port:      "/dev/ttyUSB0",
				Type:      ErrorTypeTransient,
				Retryable: false,
			},
			want: false,
		},
		{
			name: "retryable flag wins over underlying sentinel",
			transport: &TransportError{
				Err:       ErrTransportTimeout,
				Op:        "read",
				Port:      "/dev/ttyUSB0",
				Type:      ErrorTypeTimeout,
				Retryable: false,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRetryable(tt.transport); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{name: "nil error", err: nil, want: ErrorTypePermanent},
		{name: "transport timeout", err: ErrTransportTimeout, want: ErrorTypeTimeout},
		{name: "transport not ready", err: ErrTransportNotReady, want: ErrorTypeTimeout},
		{name: "transport read", err: ErrTransportRead, want: ErrorTypeTransient},
		{name: "transport write", err: ErrTransportWrite, want: ErrorTypeTransient},
		{name: "communication failed", err: ErrCommunicationFailed, want: ErrorTypeTransient},
		{name: "no ACK", err: ErrNoACK, want: ErrorTypeTransient},
		{name: "frame corrupted", err: ErrFrameCorrupted, want: ErrorTypeTransient},
		{name: "checksum mismatch", err: ErrChecksumMismatch, want: ErrorTypeTransient},
		{name: "device not found", err: ErrDeviceNotFound, want: ErrorTypePermanent},
		{name: "tag not found", err: ErrTagNotFound, want: ErrorTypePermanent},
		{name: "unknown error", err: errors.New("unknown error"), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetErrorType(tt.err); got != tt.want {
				t.Errorf("GetErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTransportError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err           error
		name          string
		op            string
		port          string
		errType       ErrorType
		wantRetryable bool
	}{
		{
			name:          "permanent error",
			op:            "read",
			port:          "/dev/ttyUSB0",
			err:           errors.New("permission denied"),
			errType:       ErrorTypePermanent,
			wantRetryable: false,
		},
		{
			name:          "transient error",
			op:            "write",
			port:          "",
			err:           errors.New("connection lost"),
			errType:       ErrorTypeTransient,
			wantRetryable: true,
		},
		{
			name:          "timeout error",
			op:            "command",
			port:          "/dev/i2c-1",
			err:           ErrTransportTimeout,
			errType:       ErrorTypeTimeout,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			te := NewTransportError(tt.op, tt.port, tt.err, tt.errType)

			if te.Op != tt.op {
				t.Errorf("Op = %q, want %q", te.Op, tt.op)
			}
			if te.Port != tt.port {
				t.Errorf("Port = %q, want %q", te.Port, tt.port)
			}
			if !errors.Is(te.Err, tt.err) {
				t.Errorf("Err = %v, want %v", te.Err, tt.err)
			}
			if te.Type != tt.errType {
				t.Errorf("Type = %v, want %v", te.Type, tt.errType)
			}
			if te.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", te.Retryable, tt.wantRetryable)
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		te   *TransportError
		want []string
	}{
		{
			name: "with port",
			te: &TransportError{
				Err:  errors.New("connection failed"),
				Op:   "read",
				Port: "/dev/ttyUSB0",
			},
			want: []string{"read", "/dev/ttyUSB0", "connection failed"},
		},
		{
			name: "without port",
			te: &TransportError{
				Err:  errors.New("device busy"),
				Op:   "write",
				Port: "",
			},
			want: []string{"write", "device busy"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.te.Error()
			for _, substr := range tt.want {
				if !strings.Contains(got, substr) {
					t.Errorf("Error() = %q, should contain %q", got, substr)
				}
			}
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()

	te := NewNoACKError("readAck", "/dev/ttyUSB0")
	if !errors.Is(te, ErrNoACK) {
		t.Errorf("errors.Is(te, ErrNoACK) = false")
	}

	te2 := NewTransportNotReadyError("waitReady", "/dev/i2c-1")
	if !errors.Is(te2, ErrTransportNotReady) {
		t.Errorf("errors.Is(te2, ErrTransportNotReady) = false")
	}
	if te2.Type != ErrorTypeTimeout {
		t.Errorf("Type = %v, want ErrorTypeTimeout", te2.Type)
	}
}

func TestNewTimeoutError(t *testing.T) {
	t.Parallel()
	te := NewTimeoutError("read", "/dev/ttyUSB0")

	if te.Type != ErrorTypeTimeout {
		t.Errorf("Type = %v, want %v", te.Type, ErrorTypeTimeout)
	}
	if !te.Retryable {
		t.Error("Retryable should be true for timeout errors")
	}
}

func TestNewDataTooLargeError(t *testing.T) {
	t.Parallel()
	te := NewDataTooLargeError("write", "/dev/ttyUSB0")

	if te.Type != ErrorTypePermanent {
		t.Errorf("Type = %v, want %v", te.Type, ErrorTypePermanent)
	}
	if te.Retryable {
		t.Error("Retryable should be false for data too large errors")
	}
}
