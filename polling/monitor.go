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

package polling

import (
	"context"
	"errors"
	"time"

	"github.com/lfrfid/lfrfid-go"
)

// Config configures a Monitor's read cadence and removal grace period.
type Config struct {
	Circuit    lfrfid.Circuit
	Protocol   lfrfid.Protocol
	CheckDelay time.Duration
	ReadTime   time.Duration

	// PollInterval is the pause between one read attempt finishing
	// and the next one starting.
	PollInterval time.Duration
	// TagRemovalTimeout is how long a tag may go unseen before
	// OnTagRemoved fires.
	TagRemovalTimeout time.Duration
	// ErrorBackoff is the pause after a read attempt fails with
	// anything other than "no tag this cycle", so a persistent
	// misconfiguration (bad circuit, bad protocol) does not spin the
	// polling loop.
	ErrorBackoff time.Duration
}

// DefaultConfig returns sensible defaults for an EM4100 monitor on the
// primary circuit.
func DefaultConfig() *Config {
	return &Config{
		Circuit:           lfrfid.CircuitPrimary,
		Protocol:          lfrfid.ProtocolEM4100,
		CheckDelay:        100 * time.Millisecond,
		ReadTime:          300 * time.Millisecond,
		PollInterval:      10 * time.Millisecond,
		TagRemovalTimeout: 2 * time.Second,
		ErrorBackoff:      500 * time.Millisecond,
	}
}

// Monitor runs a continuous read loop over a single lfrfid.Session and
// reports tag presence transitions through its callbacks.
type Monitor struct {
	session       *lfrfid.Session
	config        *Config
	OnTagDetected func(identifier string) error
	OnTagRemoved  func()
	OnTagChanged  func(identifier string) error
	// OnError is called when a read attempt fails with an error other
	// than "no tag this cycle" — a misconfigured circuit or protocol,
	// or a reentrant busy call against the underlying Session. These
	// are programmer-misuse failures, never evidence that a tag was
	// removed, so they are reported here rather than folded into
	// OnTagRemoved.
	OnError func(error)
	state   TagState
}

// NewMonitor creates a Monitor driving session with config (or
// DefaultConfig if nil).
func NewMonitor(session *lfrfid.Session, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Monitor{session: session, config: config}
}

// Start runs the continuous polling loop until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	return m.continuousPolling(ctx)
}

// State returns the monitor's current tag state.
func (m *Monitor) State() TagState { return m.state }

// Close releases the monitor's antenna hardware.
func (m *Monitor) Close() error {
	safeTimerStop(m.state.RemovalTimer)
	m.state.RemovalTimer = nil
	return m.session.Shutdown()
}

func (m *Monitor) continuousPolling(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		identifier, err := m.performSingleRead()
		if err != nil {
			if errors.Is(err, ErrNoTagInCycle) {
				continue
			}
			m.handlePollingError(err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.config.ErrorBackoff):
			}
			continue
		}

		m.processPollingResult(identifier)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.PollInterval):
		}
	}
}

func (m *Monitor) performSingleRead() (string, error) {
	res, err := m.session.Read(m.config.Protocol, m.config.Circuit, m.config.CheckDelay, m.config.ReadTime)
	if err != nil {
		return "", err
	}
	if !res.Decoded {
		return "", ErrNoTagInCycle
	}

	switch m.config.Protocol {
	case lfrfid.ProtocolEM4100:
		_, _, hexString, err := lfrfid.ProcessEM4100(res.Raw)
		return hexString, err
	default:
		_, _, _, formatted, err := lfrfid.ProcessFDXB(res.Raw)
		return formatted, err
	}
}

// handlePollingError reports a read-attempt error that was not the
// benign "no tag this cycle" outcome. Session.Read returns a nil error
// for both a genuine no-presence result and a readTime timeout; the
// only errors that reach here are KindInvalidArgument failures (a
// misconfigured circuit or protocol, or ErrSessionBusy from a
// reentrant call) — programmer misuse, not a sign that a
// previously-present tag is now gone. So this never touches tag
// presence state; it only forwards the error to OnError.
func (m *Monitor) handlePollingError(err error) {
	if m.OnError != nil {
		m.OnError(err)
	}
}

func (m *Monitor) handleTagRemoval() {
	if m.state.Present {
		if m.OnTagRemoved != nil {
			m.OnTagRemoved()
		}
		m.state.TransitionToIdle()
	}
}

func (m *Monitor) processPollingResult(identifier string) {
	changed := m.updateTagState(identifier)

	if m.state.DetectionState != StateReading {
		m.state.TransitionToDetected(m.config.TagRemovalTimeout, m.handleTagRemoval)
	}

	if changed {
		m.state.TransitionToPostReadGrace(m.config.TagRemovalTimeout, m.handleTagRemoval)
	}
}

func (m *Monitor) updateTagState(identifier string) bool {
	if !m.state.Present {
		if m.OnTagDetected != nil {
			_ = m.OnTagDetected(identifier)
		}
		m.state.Present = true
		m.state.LastIdentifier = identifier
		return true
	}

	if m.state.LastIdentifier != identifier {
		if m.OnTagChanged != nil {
			_ = m.OnTagChanged(identifier)
		}
		m.state.LastIdentifier = identifier
		return true
	}

	return false
}
