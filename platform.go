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

// Level is a single GPIO line state.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Edge selects which line transitions an edge interrupt fires on.
type Edge int

const (
	// BothEdges fires the handler on both rising and falling
	// transitions, which is all a read session ever requests.
	BothEdges Edge = iota
)

// EdgeHandler is invoked from the edge-delivery context for every
// level change on an attached pin. It must never block, allocate, or
// format strings: read sessions attach decode.Capability.OnEdge here.
type EdgeHandler func(nowMicros uint32, level Level)

// Pin identifies a single GPIO line by platform-specific index.
type Pin int

// Platform is the host collaborator a read session drives: digital
// I/O for the antenna enable lines and edge-interrupt attachment for
// the demodulator output lines. Out of scope per the core decoding
// problem; platform/gpio provides a real implementation and
// platform/sim a deterministic fake for tests.
type Platform interface {
	// DigitalWrite sets an output pin's level.
	DigitalWrite(pin Pin, level Level) error
	// PinMode configures a pin as input or output. isInput selects
	// input mode; false configures the pin as output.
	PinMode(pin Pin, isInput bool) error
	// DigitalRead returns an input pin's current level.
	DigitalRead(pin Pin) (Level, error)

	// AttachEdgeInterrupt registers handler to run on every
	// transition of pin matching edge. Only one handler may be
	// attached per pin at a time.
	AttachEdgeInterrupt(pin Pin, edge Edge, handler EdgeHandler) error
	// DetachEdgeInterrupt removes any handler registered on pin.
	DetachEdgeInterrupt(pin Pin) error
}

// Clock is the monotonic time collaborator a read session drives. All
// three methods must agree on the same underlying clock.
type Clock interface {
	// Micros returns a monotonic microsecond timestamp. It wraps
	// every ~71 minutes (uint32 overflow); callers must compute
	// deltas with unsigned modular arithmetic.
	Micros() uint32
	// Millis returns a monotonic millisecond timestamp.
	Millis() uint32
	// SleepMs blocks the calling goroutine for n milliseconds.
	SleepMs(n uint32)
}
