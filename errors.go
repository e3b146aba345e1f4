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
)

// ErrorType categorizes errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that won't be resolved by retrying
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may be resolved by retrying
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a timeout error
	ErrorTypeTimeout
)

// Transport errors
var (
	// ErrTransportTimeout indicates the transport operation timed out
	ErrTransportTimeout = errors.New("transport timeout")
	// ErrTransportRead indicates a read operation failed
	ErrTransportRead = errors.New("transport read failed")
	// ErrTransportWrite indicates a write operation failed
	ErrTransportWrite = errors.New("transport write failed")
	// ErrTransportNotReady indicates the device did not raise its ready
	// status within the allotted time
	ErrTransportNotReady = errors.New("transport not ready")
	// ErrNoACK indicates the PN532 did not acknowledge a command
	ErrNoACK = errors.New("no ACK received")
	// ErrFrameCorrupted indicates a received frame failed validation
	ErrFrameCorrupted = errors.New("frame corrupted")
	// ErrChecksumMismatch indicates a checksum validation failure
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrCommunicationFailed indicates general communication failure
	ErrCommunicationFailed = errors.New("communication failed")
)

// Device errors
var (
	// ErrDeviceNotFound indicates no PN532 device was found
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDeviceStatus indicates the PN532 reported a nonzero status byte
	ErrDeviceStatus = errors.New("device reported error status")
	// ErrUnexpectedResponse indicates the response code did not match the
	// issued command
	ErrUnexpectedResponse = errors.New("unexpected response code")
	// ErrDataTooLarge indicates the data exceeds frame capacity
	ErrDataTooLarge = errors.New("data too large for frame")
	// ErrInvalidParameter indicates an invalid parameter was provided
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotSupported indicates the operation is not supported
	ErrNotSupported = errors.New("operation not supported")
)

// Tag errors
var (
	// ErrTagNotFound indicates no tag was detected in the field
	ErrTagNotFound = errors.New("no tag detected")
	// ErrUnknownTagModel indicates the capability container does not match
	// a known NTAG model
	ErrUnknownTagModel = errors.New("unknown tag model")
	// ErrNoNDEF indicates no NDEF TLV block was found on the tag
	ErrNoNDEF = errors.New("no NDEF message found")
	// ErrBufferTooSmall indicates the destination buffer cannot hold the
	// encoded result
	ErrBufferTooSmall = errors.New("buffer too small")
)

// TransportError provides detailed error information for transport operations
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new transport error
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewTimeoutError creates a timeout transport error
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// NewNoACKError creates an error for a missing or malformed ACK
func NewNoACKError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrNoACK, ErrorTypeTransient)
}

// NewFrameCorruptedError creates an error for a frame that failed validation
func NewFrameCorruptedError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrFrameCorrupted, ErrorTypeTransient)
}

// NewDataTooLargeError creates an error for oversized command data
func NewDataTooLargeError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrDataTooLarge, ErrorTypePermanent)
}

// NewTransportNotReadyError creates an error for a device that never
// signaled readiness
func NewTransportNotReadyError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportNotReady, ErrorTypeTimeout)
}

// IsRetryable returns true if the error may be resolved by retrying.
// Only sentinel errors from this package and *TransportError values are
// recognized; anything else is treated as permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrTransportNotReady),
		errors.Is(err, ErrNoACK),
		errors.Is(err, ErrFrameCorrupted),
		errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrCommunicationFailed):
		return true
	}
	return false
}

// GetErrorType returns the error type for categorization
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrTransportTimeout), errors.Is(err, ErrTransportNotReady):
		return ErrorTypeTimeout
	case errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrNoACK),
		errors.Is(err, ErrFrameCorrupted),
		errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrCommunicationFailed):
		return ErrorTypeTransient
	}
	return ErrorTypePermanent
}
