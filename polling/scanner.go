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
	"sync"
	"sync/atomic"
	"time"

	"github.com/lfrfid/lfrfid-go"
)

// Scanner provides a high-level, goroutine-managed interface for
// continuous tag scanning. It wraps a Monitor so callers don't have to
// manage the polling context and background goroutine themselves.
// There is no write coordination here: tag writing is out of scope
// for this library entirely.
type Scanner struct {
	session       *lfrfid.Session
	config        *Config
	monitor       *Monitor
	cancelFunc    context.CancelFunc
	OnTagDetected func(identifier string) error
	OnTagRemoved  func()
	OnTagChanged  func(identifier string) error
	OnError       func(error)
	stopMutex     sync.Mutex
	running       atomic.Bool
}

// Scanner-specific errors.
var (
	ErrScannerAlreadyRunning = errors.New("polling: scanner already running")
	ErrScannerNotRunning     = errors.New("polling: scanner is not running")
)

// NewScanner creates a Scanner over session using config (or
// DefaultConfig if nil).
func NewScanner(session *lfrfid.Session, config *Config) (*Scanner, error) {
	if session == nil {
		return nil, errors.New("polling: session must not be nil")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Scanner{session: session, config: config}, nil
}

// Start begins continuous scanning in a background goroutine. Returns
// an error if the scanner is already running.
func (s *Scanner) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrScannerAlreadyRunning
	}

	scanCtx, cancel := context.WithCancel(ctx)
	s.stopMutex.Lock()
	s.cancelFunc = cancel
	s.stopMutex.Unlock()

	go func() {
		defer func() {
			s.running.Store(false)
			s.stopMutex.Lock()
			s.cancelFunc = nil
			s.stopMutex.Unlock()
		}()

		s.monitor = NewMonitor(s.session, s.config)
		s.setupEventHandlers()
		_ = s.monitor.Start(scanCtx)
	}()

	return nil
}

// Stop cancels the background scan loop and blocks until it exits.
func (s *Scanner) Stop() error {
	if !s.running.Load() {
		return nil
	}

	s.stopMutex.Lock()
	cancel := s.cancelFunc
	s.stopMutex.Unlock()

	if cancel != nil {
		cancel()
	}

	for s.running.Load() {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// IsRunning reports whether the scan loop is currently active.
func (s *Scanner) IsRunning() bool {
	return s.running.Load()
}

func (s *Scanner) setupEventHandlers() {
	s.monitor.OnTagDetected = func(identifier string) error {
		if s.OnTagDetected != nil {
			return s.OnTagDetected(identifier)
		}
		return nil
	}
	s.monitor.OnTagRemoved = func() {
		if s.OnTagRemoved != nil {
			s.OnTagRemoved()
		}
	}
	s.monitor.OnTagChanged = func(identifier string) error {
		if s.OnTagChanged != nil {
			return s.OnTagChanged(identifier)
		}
		return nil
	}
	s.monitor.OnError = func(err error) {
		if s.OnError != nil {
			s.OnError(err)
		}
	}
}
