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

// Package decode defines the protocol-polymorphic decoder contract that
// a read session drives, and the completion-state machine shared by
// every concrete decoder (EM4100, FDX-B). Concrete decoders live in
// decode/em4100 and decode/fdxb.
package decode

// CompletionState is the frame-assembly progress flag observed across
// the edge-delivery/session boundary. It is monotonically
// non-regressive between Arm and the next Arm, except that a resync
// (header lost, or an INVALID pulse mid-frame) drops it back to
// InProgress while preserving the edge counter.
type CompletionState int32

const (
	// InProgress means assembly has not yet produced a complete frame.
	InProgress CompletionState = iota
	// FrameComplete means every bit of the frame has been assembled
	// and the integrity check has not yet been evaluated.
	FrameComplete
	// IntegrityPassed means the frame is complete and its parity/CRC
	// check succeeded. The assembled buffer is stable and may be read.
	IntegrityPassed
	// IntegrityFailed means the frame completed but its integrity
	// check failed; the decoder resyncs immediately on this outcome so
	// this state is transient and mainly useful for diagnostics.
	IntegrityFailed
)

// String renders the completion state for logging.
func (s CompletionState) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case FrameComplete:
		return "frame_complete"
	case IntegrityPassed:
		return "integrity_passed"
	case IntegrityFailed:
		return "integrity_failed"
	default:
		return "unknown"
	}
}

// PulseClass is the tagged pulse-width classification an edge
// classifier derives from two consecutive edge timestamps.
type PulseClass int

const (
	// PulseInvalid marks an inter-edge interval outside both the SHORT
	// and LONG windows for the protocol in question; a hard resync
	// trigger.
	PulseInvalid PulseClass = iota
	// PulseShort marks a half-bit-time interval.
	PulseShort
	// PulseLong marks a full-bit-time interval.
	PulseLong
)

// Capability is the contract a read session drives over a single
// protocol decoder: arm it before an attempt, feed it edges as they
// arrive, poll its progress, and extract the assembled frame once
// IntegrityPassed is observed. The two concrete implementations
// (decode/em4100, decode/fdxb) are variants of this capability; the
// session itself never branches on protocol.
type Capability interface {
	// Arm clears all frame-assembly state and begins a new attempt.
	// Must be called before the edge-delivery context is attached.
	Arm()

	// OnEdge is invoked from the edge-delivery context for every
	// level change on the observed line. It must never block,
	// allocate, or format strings: the only work it does is pulse
	// classification and bit-assembly state transitions.
	OnEdge(nowMicros uint32, level bool)

	// Poll returns the current completion state and the number of
	// edges observed since the last Arm. Safe to call from the
	// foreground at any time; never mutates assembly state.
	Poll() (CompletionState, uint32)

	// Extract returns the raw assembled frame. Only meaningful once
	// Poll reports IntegrityPassed; the returned slice is a copy and
	// safe to retain after the next Arm.
	Extract() []byte

	// Name identifies the protocol for logging ("EM4100", "FDX-B").
	Name() string
}
