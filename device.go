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
	"context"
	"fmt"
	"time"
)

// Device represents a PN532 front end behind some transport
type Device struct {
	transport   Transport
	retryConfig *RetryConfig
	timeout     time.Duration
	firmware    *FirmwareVersion
}

// New creates a new PN532 device using the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: transport is nil", ErrInvalidParameter)
	}

	d := &Device{
		transport:   transport,
		retryConfig: DefaultRetryConfig(),
		timeout:     100 * time.Millisecond,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if err := transport.SetTimeout(d.timeout); err != nil {
		return nil, fmt.Errorf("failed to set transport timeout: %w", err)
	}

	return d, nil
}

// Init wakes and configures the PN532 for use as an initiator. It reads
// the firmware version to confirm the chip is responding, switches the
// SAM to normal mode and disables the passive activation retry limit so
// detection blocks until a tag arrives or the host gives up.
func (d *Device) Init() error {
	fw, err := d.GetFirmwareVersion()
	if err != nil {
		return fmt.Errorf("firmware probe failed: %w", err)
	}
	d.firmware = fw
	debugf("PN532 firmware %s", fw)

	if err := d.SAMConfiguration(); err != nil {
		return fmt.Errorf("SAM configuration failed: %w", err)
	}

	if err := d.SetPassiveActivationRetries(0xFF); err != nil {
		return fmt.Errorf("RF configuration failed: %w", err)
	}

	return nil
}

// Firmware returns the version read during Init, or nil before Init
func (d *Device) Firmware() *FirmwareVersion {
	return d.firmware
}

// SetTimeout sets the transport ready-wait and read timeout
func (d *Device) SetTimeout(timeout time.Duration) error {
	d.timeout = timeout
	if err := d.transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set transport timeout: %w", err)
	}
	return nil
}

// SetRetryConfig sets the retry configuration for device commands
func (d *Device) SetRetryConfig(config *RetryConfig) {
	if config == nil {
		config = DefaultRetryConfig()
	}
	d.retryConfig = config
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// Close closes the device and its transport
func (d *Device) Close() error {
	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}

// sendCommand issues cmd through the transport, retrying transient
// failures per the device retry policy, and verifies that the response
// code matches. The returned slice starts at the first response byte
// after the code.
func (d *Device) sendCommand(cmd byte, args []byte) ([]byte, error) {
	var resp []byte
	err := RetryWithConfig(context.Background(), d.retryConfig, func() error {
		r, sendErr := d.transport.SendCommand(cmd, args)
		if sendErr != nil {
			return sendErr
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	debugFrame("sendCommand", resp)
	if len(resp) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrCommunicationFailed)
	}
	if resp[0] != cmd+1 {
		return nil, fmt.Errorf("%w: got %#02x, want %#02x", ErrUnexpectedResponse, resp[0], cmd+1)
	}
	return resp[1:], nil
}
