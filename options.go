// lfrfid-go
// Copyright (c) 2026 The lfrfid-go Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of lfrfid-go.
//
// lfrfid-go is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// lfrfid-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with lfrfid-go; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package lfrfid

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Option is a functional option for configuring a Session.
type Option func(*Session) error

// WithLogger sets the structured logger a Session uses for diagnostic
// events (presence-gate decisions, decode outcomes, antenna faults).
// The edge-delivery context never logs; only the session does, after
// an attempt has finished running.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) error {
		s.logger = logger
		return nil
	}
}

// WithClock injects the monotonic clock collaborator. Required: a
// Session constructed without WithClock fails NewSession.
func WithClock(clock Clock) Option {
	return func(s *Session) error {
		s.clock = clock
		return nil
	}
}

// WithPresenceGateSlack overrides the default presence-gate slack
// constant (25), exposing this empirical value as a tunable rather
// than leaving it hardcoded.
func WithPresenceGateSlack(slack uint32) Option {
	return func(s *Session) error {
		s.presenceGateSlack = slack
		return nil
	}
}

// WithPlatform overrides the Platform collaborator set at
// construction (mainly useful for tests that build a Session once and
// swap in a fake platform per table-test case).
func WithPlatform(platform Platform) Option {
	return func(s *Session) error {
		if platform == nil {
			return fmt.Errorf("lfrfid: WithPlatform: %w", errNilPlatform)
		}
		s.platform = platform
		return nil
	}
}

var errNilPlatform = sessionConfigError("platform must not be nil")
