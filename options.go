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
	"time"
)

// Option configures a Device during New
type Option func(*Device) error

// WithTimeout sets the transport ready-wait and read timeout.
// Zero means wait forever.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		if timeout < 0 {
			return fmt.Errorf("%w: negative timeout", ErrInvalidParameter)
		}
		d.timeout = timeout
		return nil
	}
}

// WithRetryConfig sets the retry configuration for device commands
func WithRetryConfig(config *RetryConfig) Option {
	return func(d *Device) error {
		if config == nil {
			return fmt.Errorf("%w: nil retry config", ErrInvalidParameter)
		}
		d.retryConfig = config
		return nil
	}
}

// WithMaxRetries adjusts only the attempt budget of the retry policy
func WithMaxRetries(attempts int) Option {
	return func(d *Device) error {
		if attempts < 1 {
			return fmt.Errorf("%w: attempts must be at least 1", ErrInvalidParameter)
		}
		d.retryConfig.MaxAttempts = attempts
		return nil
	}
}

// WithRetryBackoff adjusts the initial and maximum backoff of the retry
// policy
func WithRetryBackoff(initial, maximum time.Duration) Option {
	return func(d *Device) error {
		if initial <= 0 || maximum < initial {
			return fmt.Errorf("%w: invalid backoff range", ErrInvalidParameter)
		}
		d.retryConfig.InitialBackoff = initial
		d.retryConfig.MaxBackoff = maximum
		return nil
	}
}
