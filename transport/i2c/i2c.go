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

// Package i2c provides the I2C transport for the PN532
package i2c

import (
	"fmt"
	"time"

	piconfc "github.com/piconfc/go-piconfc"
	"github.com/piconfc/go-piconfc/internal/frame"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// 7-bit I2C address of the PN532
	pn532Addr = 0x24

	// Max clock frequency (400 kHz)
	maxClockFreq = 400 * physic.KiloHertz

	// Interval between ready status polls
	readyPollInterval = time.Millisecond

	// Settle delay between the ACK and the response becoming available
	settleDelay = 6 * time.Millisecond
)

// Transport implements piconfc.Transport over an I2C bus. Every read
// transaction the PN532 answers begins with a status byte, so all
// inbound buffers carry one extra leading byte that is discarded.
type Transport struct {
	dev     *i2c.Dev
	busName string
	timeout time.Duration
}

// New opens busName and addresses the PN532 on it
func New(busName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	// Best effort. The bus may not support changing speed.
	_ = bus.SetSpeed(maxClockFreq)

	return &Transport{
		dev:     &i2c.Dev{Addr: pn532Addr, Bus: bus},
		busName: busName,
		timeout: 50 * time.Millisecond,
	}, nil
}

// NewWithBus wraps an already-open bus, mainly for tests
func NewWithBus(bus i2c.Bus, busName string) *Transport {
	return &Transport{
		dev:     &i2c.Dev{Addr: pn532Addr, Bus: bus},
		busName: busName,
		timeout: 50 * time.Millisecond,
	}
}

// SendCommand sends a command frame, verifies the ACK and returns the
// validated response payload.
func (t *Transport) SendCommand(cmd byte, args []byte) ([]byte, error) {
	frm, err := frame.BuildCommand(cmd, args)
	if err != nil {
		return nil, piconfc.NewDataTooLargeError("sendFrame", t.busName)
	}
	if err := t.dev.Tx(frm, nil); err != nil {
		return nil, piconfc.NewTransportError("sendFrame", t.busName,
			fmt.Errorf("%w: %w", piconfc.ErrTransportWrite, err), piconfc.ErrorTypeTransient)
	}

	if err := t.readAck(); err != nil {
		return nil, err
	}

	// Give the chip a moment to execute before polling for the response.
	time.Sleep(settleDelay)

	return t.receiveFrame()
}

// SetTimeout sets the ready-wait timeout. Zero waits forever.
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.timeout = timeout
	return nil
}

// Close closes the transport connection
func (*Transport) Close() error {
	// periph.io owns bus lifetime
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	return t.dev != nil
}

// Type returns the transport type
func (*Transport) Type() piconfc.TransportType {
	return piconfc.TransportI2C
}

// checkReady reads the status byte and reports whether the chip has a
// frame waiting.
func (t *Transport) checkReady() (bool, error) {
	ready := frame.GetSmallBuffer(1)
	defer frame.PutBuffer(ready)

	if err := t.dev.Tx(nil, ready); err != nil {
		return false, piconfc.NewTransportError("checkReady", t.busName,
			fmt.Errorf("%w: %w", piconfc.ErrTransportRead, err), piconfc.ErrorTypeTransient)
	}
	return ready[0] == frame.ReadyByte, nil
}

// waitReady polls the status byte until the chip is ready or the timeout
// elapses. A zero timeout polls forever.
func (t *Transport) waitReady(op string) error {
	var deadline time.Time
	if t.timeout > 0 {
		deadline = time.Now().Add(t.timeout)
	}

	for {
		ready, err := t.checkReady()
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return piconfc.NewTransportNotReadyError(op, t.busName)
		}
		time.Sleep(readyPollInterval)
	}
}

// readAck waits for readiness and verifies the 6-byte ACK frame
func (t *Transport) readAck() error {
	if err := t.waitReady("readAck"); err != nil {
		return err
	}

	// status byte + ACK frame
	buf := frame.GetSmallBuffer(1 + len(frame.AckFrame))
	defer frame.PutBuffer(buf)

	if err := t.dev.Tx(nil, buf); err != nil {
		return piconfc.NewTransportError("readAck", t.busName,
			fmt.Errorf("%w: %w", piconfc.ErrTransportRead, err), piconfc.ErrorTypeTransient)
	}
	if !frame.IsAck(buf[1:]) {
		return piconfc.NewNoACKError("readAck", t.busName)
	}
	return nil
}

// receiveFrame waits for the response frame, validates it and hands the
// payload back. A corrupted frame is NACKed so the chip retransmits, up
// to three attempts.
func (t *Transport) receiveFrame() ([]byte, error) {
	const maxTries = 3

	for tries := 0; tries < maxTries; tries++ {
		if err := t.waitReady("receiveFrame"); err != nil {
			return nil, err
		}

		buf := frame.GetBuffer(1 + frame.MaxFrameDataLength + frame.FrameOverhead)
		if err := t.dev.Tx(nil, buf); err != nil {
			frame.PutBuffer(buf)
			return nil, piconfc.NewTransportError("receiveFrame", t.busName,
				fmt.Errorf("%w: %w", piconfc.ErrTransportRead, err), piconfc.ErrorTypeTransient)
		}

		payload, err := frame.ParseResponse(buf[1:])
		frame.PutBuffer(buf)
		if err == nil {
			return payload, nil
		}

		if nackErr := t.dev.Tx(frame.NackFrame, nil); nackErr != nil {
			return nil, piconfc.NewTransportError("sendNack", t.busName,
				fmt.Errorf("%w: %w", piconfc.ErrTransportWrite, nackErr), piconfc.ErrorTypeTransient)
		}
	}

	return nil, piconfc.NewFrameCorruptedError("receiveFrame", t.busName)
}

// Ensure Transport implements piconfc.Transport
var _ piconfc.Transport = (*Transport)(nil)
