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

package i2c

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	piconfc "github.com/piconfc/go-piconfc"
	"github.com/piconfc/go-piconfc/internal/frame"
	"periph.io/x/conn/v3/physic"
)

// fakeBus emulates a PN532 on an I2C bus. Reads of one byte return the
// status byte, larger reads deliver the ACK and then the response frame,
// each prefixed with the status byte the chip prepends to every read.
type fakeBus struct {
	mu sync.Mutex

	// response frames queued for delivery, full wire format
	responses [][]byte
	// readyAfterPolls delays readiness by that many status reads
	readyAfterPolls int
	neverReady      bool

	statusPolls int
	writes      [][]byte
	ackPending  bool
}

func (*fakeBus) String() string { return "faketest" }

func (*fakeBus) SetSpeed(physic.Frequency) error { return nil }

func (b *fakeBus) Tx(_ uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(w) > 0 {
		wc := make([]byte, len(w))
		copy(wc, w)
		b.writes = append(b.writes, wc)
		if !bytes.Equal(w, frame.NackFrame) {
			b.ackPending = true
		}
		return nil
	}

	if len(r) == 1 {
		b.statusPolls++
		if !b.neverReady && b.statusPolls > b.readyAfterPolls {
			r[0] = frame.ReadyByte
		} else {
			r[0] = 0x00
		}
		return nil
	}

	r[0] = frame.ReadyByte
	if b.ackPending {
		copy(r[1:], frame.AckFrame)
		b.ackPending = false
		return nil
	}
	if len(b.responses) > 0 {
		copy(r[1:], b.responses[0])
		b.responses = b.responses[1:]
	}
	return nil
}

// buildResponseFrame wraps payload (response code first) in wire framing
func buildResponseFrame(t *testing.T, payload []byte) []byte {
	t.Helper()
	dataLen := byte(1 + len(payload))
	frm := []byte{0x00, 0x00, 0xFF, dataLen, frame.CalculateLengthChecksum(dataLen), frame.Pn532ToHost}
	frm = append(frm, payload...)
	frm = append(frm, frame.CalculateDataChecksum(frame.Pn532ToHost, payload), 0x00)
	return frm
}

func TestSendCommand(t *testing.T) {
	t.Parallel()

	firmware := []byte{0x03, 0x32, 0x01, 0x06, 0x07}
	bus := &fakeBus{responses: [][]byte{buildResponseFrame(t, firmware)}}
	tr := NewWithBus(bus, "faketest")

	got, err := tr.SendCommand(0x02, nil)
	if err != nil {
		t.Fatalf("SendCommand() error = %v", err)
	}
	if !bytes.Equal(got, firmware) {
		t.Errorf("SendCommand() = % 02X, want % 02X", got, firmware)
	}

	// The written command frame must carry the host direction byte.
	if len(bus.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(bus.writes))
	}
	if bus.writes[0][5] != frame.HostToPn532 {
		t.Errorf("frame TFI = %#02x, want %#02x", bus.writes[0][5], frame.HostToPn532)
	}
}

func TestSendCommandWaitsForReady(t *testing.T) {
	t.Parallel()

	firmware := []byte{0x03, 0x32, 0x01, 0x06, 0x07}
	bus := &fakeBus{
		responses:       [][]byte{buildResponseFrame(t, firmware)},
		readyAfterPolls: 5,
	}
	tr := NewWithBus(bus, "faketest")

	if _, err := tr.SendCommand(0x02, nil); err != nil {
		t.Fatalf("SendCommand() error = %v", err)
	}
	if bus.statusPolls <= 5 {
		t.Errorf("statusPolls = %d, want more than 5", bus.statusPolls)
	}
}

func TestSendCommandNotReadyTimeout(t *testing.T) {
	t.Parallel()

	bus := &fakeBus{neverReady: true}
	tr := NewWithBus(bus, "faketest")
	if err := tr.SetTimeout(50 * time.Millisecond); err != nil {
		t.Fatal(err)
	}

	_, err := tr.SendCommand(0x02, nil)
	if !errors.Is(err, piconfc.ErrTransportNotReady) {
		t.Fatalf("SendCommand() error = %v, want ErrTransportNotReady", err)
	}

	// Polling runs at millisecond intervals, so a 50ms budget gives on
	// the order of fifty polls. Bound loosely to stay robust under load.
	if bus.statusPolls < 10 {
		t.Errorf("statusPolls = %d, want at least 10", bus.statusPolls)
	}
}

func TestSendCommandNacksCorruptedFrame(t *testing.T) {
	t.Parallel()

	payload := []byte{0x15}
	good := buildResponseFrame(t, payload)
	bad := bytes.Clone(good)
	bad[len(bad)-2] ^= 0x01 // flip a DCS bit

	bus := &fakeBus{responses: [][]byte{bad, good}}
	tr := NewWithBus(bus, "faketest")

	got, err := tr.SendCommand(0x14, []byte{0x01, 0x14, 0x00})
	if err != nil {
		t.Fatalf("SendCommand() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("SendCommand() = % 02X, want % 02X", got, payload)
	}

	// command frame, then one NACK
	if len(bus.writes) != 2 {
		t.Fatalf("writes = %d, want 2", len(bus.writes))
	}
	if !bytes.Equal(bus.writes[1], frame.NackFrame) {
		t.Errorf("second write = % 02X, want NACK", bus.writes[1])
	}
}

func TestSendCommandPersistentCorruption(t *testing.T) {
	t.Parallel()

	bad := buildResponseFrame(t, []byte{0x15})
	bad[len(bad)-2] ^= 0x01

	bus := &fakeBus{responses: [][]byte{
		bytes.Clone(bad), bytes.Clone(bad), bytes.Clone(bad),
	}}
	tr := NewWithBus(bus, "faketest")

	_, err := tr.SendCommand(0x14, []byte{0x01, 0x14, 0x00})
	if !errors.Is(err, piconfc.ErrFrameCorrupted) {
		t.Fatalf("SendCommand() error = %v, want ErrFrameCorrupted", err)
	}
}

func TestTransportType(t *testing.T) {
	t.Parallel()

	tr := NewWithBus(&fakeBus{}, "faketest")
	if tr.Type() != piconfc.TransportI2C {
		t.Errorf("Type() = %v, want %v", tr.Type(), piconfc.TransportI2C)
	}
	if !tr.IsConnected() {
		t.Error("IsConnected() = false for open transport")
	}
}
