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

// Package gpio implements lfrfid.Platform over real GPIO lines using
// periph.io, the way a Raspberry Pi or similar SBC exposes the
// antenna shutdown pins and demodulator input lines this library
// expects.
package gpio

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/lfrfid/lfrfid-go"
)

// Platform is a real lfrfid.Platform backed by periph.io GPIO pins,
// addressed by BCM/GPIO index.
type Platform struct {
	mu      sync.Mutex
	pins    map[lfrfid.Pin]gpio.PinIO
	cancels map[lfrfid.Pin]chan struct{}
}

// New initializes the periph.io host drivers and returns a Platform.
// Must be called once per process before any pin is used.
func New() (*Platform, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: periph host init: %w", err)
	}
	return &Platform{
		pins:    make(map[lfrfid.Pin]gpio.PinIO),
		cancels: make(map[lfrfid.Pin]chan struct{}),
	}, nil
}

func (p *Platform) resolve(pin lfrfid.Pin) (gpio.PinIO, error) {
	p.mu.Lock()
	if cached, ok := p.pins[pin]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	io := gpioreg.ByName(strconv.Itoa(int(pin)))
	if io == nil {
		return nil, fmt.Errorf("gpio: no pin registered for index %d", pin)
	}

	p.mu.Lock()
	p.pins[pin] = io
	p.mu.Unlock()
	return io, nil
}

// DigitalWrite implements lfrfid.Platform.
func (p *Platform) DigitalWrite(pin lfrfid.Pin, level lfrfid.Level) error {
	io, err := p.resolve(pin)
	if err != nil {
		return err
	}
	return io.Out(gpio.Level(level))
}

// PinMode implements lfrfid.Platform.
func (p *Platform) PinMode(pin lfrfid.Pin, isInput bool) error {
	io, err := p.resolve(pin)
	if err != nil {
		return err
	}
	if isInput {
		return io.In(gpio.PullNoChange, gpio.NoEdge)
	}
	return io.Out(gpio.Low)
}

// DigitalRead implements lfrfid.Platform.
func (p *Platform) DigitalRead(pin lfrfid.Pin) (lfrfid.Level, error) {
	io, err := p.resolve(pin)
	if err != nil {
		return lfrfid.Low, err
	}
	return lfrfid.Level(io.Read()), nil
}

// AttachEdgeInterrupt implements lfrfid.Platform. It configures pin
// for both-edge interrupts and runs a goroutine that blocks on
// WaitForEdge, invoking handler on every transition until Detach is
// called. Only one handler may be attached per pin at a time.
func (p *Platform) AttachEdgeInterrupt(pin lfrfid.Pin, _ lfrfid.Edge, handler lfrfid.EdgeHandler) error {
	io, err := p.resolve(pin)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if _, exists := p.cancels[pin]; exists {
		p.mu.Unlock()
		return fmt.Errorf("gpio: pin %d already has an attached handler", pin)
	}
	done := make(chan struct{})
	p.cancels[pin] = done
	p.mu.Unlock()

	if err := io.In(gpio.PullNoChange, gpio.BothEdges); err != nil {
		p.mu.Lock()
		delete(p.cancels, pin)
		p.mu.Unlock()
		return fmt.Errorf("gpio: configure edge interrupt on pin %d: %w", pin, err)
	}

	start := time.Now()
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			if io.WaitForEdge(100 * time.Millisecond) {
				handler(uint32(time.Since(start).Microseconds()), lfrfid.Level(io.Read()))
			}
		}
	}()
	return nil
}

// DetachEdgeInterrupt implements lfrfid.Platform.
func (p *Platform) DetachEdgeInterrupt(pin lfrfid.Pin) error {
	p.mu.Lock()
	done, exists := p.cancels[pin]
	delete(p.cancels, pin)
	p.mu.Unlock()
	if exists {
		close(done)
	}
	return nil
}
