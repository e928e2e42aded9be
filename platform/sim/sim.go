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

// Package sim provides an in-memory lfrfid.Platform and lfrfid.Clock
// for deterministic tests: no real hardware, no real sleeps, full
// control over what edges a test drives into the decoder.
package sim

import (
	"fmt"
	"sync"

	"github.com/lfrfid/lfrfid-go"
)

// Platform is an in-memory lfrfid.Platform. DigitalWrite/DigitalRead
// simply record and return pin state; edge delivery is driven by test
// code calling Fire, not by any real interrupt source.
type Platform struct {
	mu       sync.Mutex
	levels   map[lfrfid.Pin]lfrfid.Level
	handlers map[lfrfid.Pin]lfrfid.EdgeHandler
}

// New returns an empty simulated platform; all pins read Low until
// written.
func New() *Platform {
	return &Platform{
		levels:   make(map[lfrfid.Pin]lfrfid.Level),
		handlers: make(map[lfrfid.Pin]lfrfid.EdgeHandler),
	}
}

func (p *Platform) DigitalWrite(pin lfrfid.Pin, level lfrfid.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[pin] = level
	return nil
}

func (p *Platform) PinMode(lfrfid.Pin, bool) error { return nil }

func (p *Platform) DigitalRead(pin lfrfid.Pin) (lfrfid.Level, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levels[pin], nil
}

func (p *Platform) AttachEdgeInterrupt(pin lfrfid.Pin, _ lfrfid.Edge, handler lfrfid.EdgeHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.handlers[pin]; exists {
		return fmt.Errorf("sim: pin %d already has an attached handler", pin)
	}
	p.handlers[pin] = handler
	return nil
}

func (p *Platform) DetachEdgeInterrupt(pin lfrfid.Pin) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.handlers, pin)
	return nil
}

// Fire delivers one edge to whatever handler is currently attached to
// pin, exactly as a real interrupt controller would. It is a no-op if
// no handler is attached.
func (p *Platform) Fire(pin lfrfid.Pin, nowMicros uint32, level lfrfid.Level) {
	p.mu.Lock()
	handler := p.handlers[pin]
	p.mu.Unlock()
	if handler != nil {
		handler(nowMicros, level)
	}
}

// Level returns the last level written to pin (Low if never written).
func (p *Platform) Level(pin lfrfid.Pin) lfrfid.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levels[pin]
}

// Clock is a manually-advanced fake lfrfid.Clock: SleepMs advances the
// simulated time rather than blocking, and it optionally invokes a
// tick callback so tests can drive edges from within a sleep.
type Clock struct {
	mu      sync.Mutex
	micros  uint32
	OnSleep func(elapsedMs uint32)
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Micros() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.micros
}

func (c *Clock) Millis() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.micros / 1000
}

func (c *Clock) SleepMs(n uint32) {
	c.mu.Lock()
	c.micros += n * 1000
	c.mu.Unlock()
	if c.OnSleep != nil {
		c.OnSleep(n)
	}
}

// Advance moves the clock forward without invoking OnSleep, useful for
// setting up a fixture before a test begins.
func (c *Clock) Advance(us uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.micros += us
}
