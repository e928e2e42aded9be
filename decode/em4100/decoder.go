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

package em4100

import (
	"sync/atomic"

	"github.com/lfrfid/lfrfid-go/decode"
	"github.com/lfrfid/lfrfid-go/internal/frame"
)

type searchState int

const (
	seekHeader searchState = iota
	assembleFrame
)

// Decoder implements decode.Capability for the EM4100 protocol. It is
// armed once per read attempt; OnEdge is the only method ever called
// from the edge-delivery context, and it never blocks, allocates, or
// formats a string.
type Decoder struct {
	// Fields below this point are mutated only from OnEdge while armed.
	state         searchState
	haveLongGate  bool
	pendingShort  bool
	onesRun       int
	byteIdx       int
	bitIdx        int
	rowParityAcc  int
	failureBitmap uint16
	groups        [frame.EM4100TotalGroups]byte
	lastEdge      uint32

	completion atomic.Int32
	edgeCount  atomic.Uint32
}

// New returns an unarmed EM4100 decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name implements decode.Capability.
func (*Decoder) Name() string { return "EM4100" }

// Arm implements decode.Capability.
func (d *Decoder) Arm() {
	d.state = seekHeader
	d.haveLongGate = false
	d.pendingShort = false
	d.onesRun = 0
	d.byteIdx = 0
	d.bitIdx = 4
	d.rowParityAcc = 0
	d.failureBitmap = 0
	d.groups = [frame.EM4100TotalGroups]byte{}
	d.lastEdge = 0
	d.completion.Store(int32(decode.InProgress))
	d.edgeCount.Store(0)
}

// Poll implements decode.Capability.
func (d *Decoder) Poll() (decode.CompletionState, uint32) {
	return decode.CompletionState(d.completion.Load()), d.edgeCount.Load()
}

// Extract implements decode.Capability. It returns the 11 raw assembly
// groups (one byte per group, data in the low 5 bits) copied out of the
// decoder. Only meaningful once Poll reports decode.IntegrityPassed;
// pass the result to Present to obtain the formatted identifier.
func (d *Decoder) Extract() []byte {
	raw := make([]byte, len(d.groups))
	copy(raw, d.groups[:])
	return raw
}

// OnEdge implements decode.Capability.
func (d *Decoder) OnEdge(nowMicros uint32, level bool) {
	if decode.CompletionState(d.completion.Load()) == decode.IntegrityPassed {
		// Frame already validated and pending extraction; ignore
		// further edges until the session re-arms us.
		return
	}

	delta := nowMicros - d.lastEdge
	d.lastEdge = nowMicros
	d.edgeCount.Add(1)

	pulse := classify(delta)
	if pulse == decode.PulseInvalid {
		d.resync()
		return
	}

	if d.state == seekHeader && !d.haveLongGate {
		if pulse != decode.PulseLong {
			// Drop pre-gate noise without disturbing pendingShort.
			return
		}
		d.haveLongGate = true
	}

	bit, ready := d.stepManchester(pulse, level)
	if !ready {
		return
	}

	switch d.state {
	case seekHeader:
		d.seekHeaderBit(bit)
	case assembleFrame:
		d.consumeBit(bit)
	}
}

// stepManchester turns a classified pulse into a decoded bit. A LONG
// pulse always yields one bit (the current level). Two consecutive
// SHORT pulses together yield one bit (the level at the second SHORT).
func (d *Decoder) stepManchester(pulse decode.PulseClass, level bool) (bit, ready bool) {
	switch pulse {
	case decode.PulseLong:
		d.pendingShort = false
		return level, true
	case decode.PulseShort:
		if !d.pendingShort {
			d.pendingShort = true
			return false, false
		}
		d.pendingShort = false
		return level, true
	default:
		return false, false
	}
}

func (d *Decoder) seekHeaderBit(bit bool) {
	if bit {
		d.onesRun++
		if d.onesRun >= frame.EM4100HeaderOnes {
			d.state = assembleFrame
			d.byteIdx = 0
			d.bitIdx = 4
		}
	} else {
		d.onesRun = 0
	}
}

// consumeBit writes one bit of the 11-group assembly, checking row
// parity at the end of each row and column parity at the end of the
// frame. Per the documented source quirk, row parity XORs only the
// upper 4 bits of the row and compares against bit 0 (treated as the
// parity bit).
func (d *Decoder) consumeBit(bit bool) {
	if bit {
		d.groups[d.byteIdx] |= 1 << d.bitIdx
	}
	if d.byteIdx < frame.EM4100DataRows && d.bitIdx >= 1 {
		d.rowParityAcc ^= boolToInt(bit)
	}

	if d.bitIdx == 0 {
		if d.byteIdx < frame.EM4100DataRows {
			if d.rowParityAcc != boolToInt(bit) {
				d.failureBitmap |= 1 << uint(d.byteIdx)
			}
			d.rowParityAcc = 0
		}
		d.byteIdx++
		d.bitIdx = 4
		if d.byteIdx == frame.EM4100TotalGroups {
			d.finishAssembly()
		}
		return
	}
	d.bitIdx--
}

func (d *Decoder) finishAssembly() {
	for col := range 4 {
		bitPos := uint(4 - col)
		colXor := 0
		for row := range frame.EM4100DataRows {
			colXor ^= int((d.groups[row] >> bitPos) & 1)
		}
		finalBit := int((d.groups[frame.EM4100DataRows] >> bitPos) & 1)
		if colXor != finalBit {
			d.failureBitmap |= 1 << 10
		}
	}

	d.completion.Store(int32(decode.FrameComplete))
	if d.failureBitmap == 0 {
		d.completion.Store(int32(decode.IntegrityPassed))
		return
	}
	d.completion.Store(int32(decode.IntegrityFailed))
	d.resync()
}

// resync drops frame-assembly state and returns to header search while
// preserving the edge counter, per the invariant that a resync must not
// reset the presence detector.
func (d *Decoder) resync() {
	d.state = seekHeader
	d.haveLongGate = false
	d.pendingShort = false
	d.onesRun = 0
	d.byteIdx = 0
	d.bitIdx = 4
	d.rowParityAcc = 0
	d.failureBitmap = 0
	d.groups = [frame.EM4100TotalGroups]byte{}
	d.completion.Store(int32(decode.InProgress))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ decode.Capability = (*Decoder)(nil)
