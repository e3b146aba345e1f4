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

// Package uart provides the UART transport for the PN532
package uart

import (
	"fmt"
	"io"
	"time"

	piconfc "github.com/piconfc/go-piconfc"
	"github.com/piconfc/go-piconfc/internal/frame"
	"go.bug.st/serial"
)

const defaultBaudRate = 115200

// wakeupSequence pulls the PN532 out of low VBAT mode before the first
// command. The long preamble gives the chip time to start its oscillator.
var wakeupSequence = []byte{
	0x55, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Transport implements piconfc.Transport over a serial port
type Transport struct {
	port     serial.Port
	portName string
	timeout  time.Duration
}

// portReadTimeout translates the transport timeout contract, where zero
// means wait forever, into go.bug.st/serial's, where zero means
// non-blocking and NoTimeout is the only blocking value.
func portReadTimeout(timeout time.Duration) time.Duration {
	if timeout == 0 {
		return serial.NoTimeout
	}
	return timeout
}

// New opens portName at the PN532's fixed 115200 baud and wakes the chip
func New(portName string) (*Transport, error) {
	mode := &serial.Mode{
		BaudRate: defaultBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	t := &Transport{
		port:     port,
		portName: portName,
		timeout:  50 * time.Millisecond,
	}
	if err := t.port.SetReadTimeout(portReadTimeout(t.timeout)); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	if _, err := t.port.Write(wakeupSequence); err != nil {
		_ = port.Close()
		return nil, piconfc.NewTransportError("wakeup", portName,
			fmt.Errorf("%w: %w", piconfc.ErrTransportWrite, err), piconfc.ErrorTypePermanent)
	}
	_ = t.port.ResetInputBuffer()

	return t, nil
}

// SendCommand sends a command frame, verifies the ACK and returns the
// validated response payload.
func (t *Transport) SendCommand(cmd byte, args []byte) ([]byte, error) {
	frm, err := frame.BuildCommand(cmd, args)
	if err != nil {
		return nil, piconfc.NewDataTooLargeError("sendFrame", t.portName)
	}

	_ = t.port.ResetInputBuffer()
	if _, err := t.port.Write(frm); err != nil {
		return nil, piconfc.NewTransportError("sendFrame", t.portName,
			fmt.Errorf("%w: %w", piconfc.ErrTransportWrite, err), piconfc.ErrorTypeTransient)
	}

	if err := t.readAck(); err != nil {
		return nil, err
	}

	return t.receiveFrame()
}

// SetTimeout sets the serial read timeout. Zero blocks until data
// arrives.
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.timeout = timeout
	if t.port == nil {
		return nil
	}
	if err := t.port.SetReadTimeout(portReadTimeout(timeout)); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	return nil
}

// Close closes the serial port
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port: %w", err)
	}
	t.port = nil
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	return t.port != nil
}

// Type returns the transport type
func (*Transport) Type() piconfc.TransportType {
	return piconfc.TransportUART
}

// readExact reads exactly len(buf) bytes, treating a zero-byte read as
// the serial timeout it is.
func (t *Transport) readExact(op string, buf []byte) error {
	head := 0
	for head < len(buf) {
		n, err := t.port.Read(buf[head:])
		if err != nil {
			if err == io.EOF {
				return piconfc.NewTimeoutError(op, t.portName)
			}
			return piconfc.NewTransportError(op, t.portName,
				fmt.Errorf("%w: %w", piconfc.ErrTransportRead, err), piconfc.ErrorTypeTransient)
		}
		if n == 0 {
			return piconfc.NewTimeoutError(op, t.portName)
		}
		head += n
	}
	return nil
}

// readAck scans the inbound stream for the 6-byte ACK frame using a
// sliding window, discarding noise bytes ahead of it. The scan is capped
// so a chattering line cannot stall the caller forever.
func (t *Transport) readAck() error {
	const maxScan = 32

	buf := frame.GetSmallBuffer(len(frame.AckFrame))
	defer frame.PutBuffer(buf)

	if err := t.readExact("readAck", buf); err != nil {
		return err
	}

	for scanned := 0; scanned < maxScan; scanned++ {
		if frame.IsAck(buf) {
			return nil
		}
		copy(buf, buf[1:])
		if err := t.readExact("readAck", buf[len(buf)-1:]); err != nil {
			return err
		}
	}
	return piconfc.NewNoACKError("readAck", t.portName)
}

// receiveFrame reads the response header, sizes the remainder from the
// length byte and validates the complete frame.
func (t *Transport) receiveFrame() ([]byte, error) {
	// preamble + start code + len + lcs
	header := frame.GetSmallBuffer(5)
	defer frame.PutBuffer(header)

	if err := t.readExact("receiveFrame", header); err != nil {
		return nil, err
	}

	length := int(header[3])
	rest := frame.GetBuffer(length + 2) // TFI + data + DCS + postamble
	defer frame.PutBuffer(rest)

	if err := t.readExact("receiveFrame", rest); err != nil {
		return nil, err
	}

	full := make([]byte, 0, len(header)+len(rest))
	full = append(full, header...)
	full = append(full, rest...)

	payload, err := frame.ParseResponse(full)
	if err != nil {
		return nil, piconfc.NewTransportError("receiveFrame", t.portName,
			fmt.Errorf("%w: %w", piconfc.ErrFrameCorrupted, err), piconfc.ErrorTypeTransient)
	}
	return payload, nil
}

// Ensure Transport implements piconfc.Transport
var _ piconfc.Transport = (*Transport)(nil)
