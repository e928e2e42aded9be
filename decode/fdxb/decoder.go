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

package fdxb

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

const headerSeed uint16 = 0xFFFF

// Decoder implements decode.Capability for the ISO 11784/11785 FDX-B
// protocol. It is armed once per read attempt; OnEdge is the only
// method ever called from the edge-delivery context, and it never
// blocks, allocates, or formats a string.
type Decoder struct {
	state    searchState
	toggle   bool
	tenZ     uint16
	byteIdx  int
	bitIdx   int
	groups   [frame.FDXBOctetCount]byte
	lastEdge uint32

	completion atomic.Int32
	edgeCount  atomic.Uint32
}

// New returns an unarmed FDX-B decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name implements decode.Capability.
func (*Decoder) Name() string { return "FDX-B" }

// Arm implements decode.Capability.
func (d *Decoder) Arm() {
	d.state = seekHeader
	d.toggle = false
	d.tenZ = headerSeed
	d.byteIdx = 0
	d.bitIdx = 0
	d.groups = [frame.FDXBOctetCount]byte{}
	d.lastEdge = 0
	d.completion.Store(int32(decode.InProgress))
	d.edgeCount.Store(0)
}

// Poll implements decode.Capability.
func (d *Decoder) Poll() (decode.CompletionState, uint32) {
	return decode.CompletionState(d.completion.Load()), d.edgeCount.Load()
}

// Extract implements decode.Capability. It returns the 13 raw octets
// (8 payload bytes, 2 CRC bytes, 3 extension bytes) copied out of the
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

	// A SHORT pulse starting a new bit on the stuffing marker position is
	// a framing violation: the marker is always carried by a single LONG
	// pulse. The second SHORT of the octet's last 0-bit (toggle set) is
	// not a violation; stepBiphase swallows it.
	if d.state == assembleFrame && d.bitIdx == frame.FDXBBitsPerOctet-1 && pulse == decode.PulseShort && !d.toggle {
		d.resync()
		return
	}

	bit, ready := d.stepBiphase(pulse)
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

// stepBiphase turns a classified pulse into a decoded bit under
// differential Manchester (biphase) coding. A LONG pulse always
// yields a 1-bit and clears the half-bit toggle. A 0-bit is carried
// by two SHORT pulses: per the documented source behavior, the bit is
// emitted on the first SHORT (the toggle from 0 to 1) and the second
// SHORT is swallowed silently (the toggle back from 1 to 0, emitting
// nothing).
func (d *Decoder) stepBiphase(pulse decode.PulseClass) (bit, ready bool) {
	switch pulse {
	case decode.PulseLong:
		d.toggle = false
		return true, true
	case decode.PulseShort:
		if !d.toggle {
			d.toggle = true
			return false, true
		}
		d.toggle = false
		return false, false
	default:
		return false, false
	}
}

// seekHeaderBit maintains the rolling 16-bit header shift register.
// A match requires the low 10 bits to already be zero when a 1-bit
// arrives, checked before the new bit is shifted in.
func (d *Decoder) seekHeaderBit(bit bool) {
	if d.tenZ&0x03FF == 0 && bit {
		d.state = assembleFrame
		d.byteIdx = 0
		d.bitIdx = 0
		return
	}
	d.tenZ = (d.tenZ << 1) | boolToU16(bit)
}

// consumeBit writes one data bit, or consumes a stuffing marker bit
// once every 8 data bits have been written. CRC is checked the moment
// the CRC-high octet's 8 data bits finish; final integrity is declared
// the moment the last extension octet's 8 data bits finish.
func (d *Decoder) consumeBit(bit bool) {
	if d.bitIdx == frame.FDXBBitsPerOctet-1 {
		// Marker bit: always 1 (checked above), carries no data.
		d.bitIdx = 0
		d.byteIdx++
		return
	}

	if bit {
		d.groups[d.byteIdx] |= 1 << uint(d.bitIdx)
	}
	d.bitIdx++

	if d.bitIdx != 8 {
		return
	}

	switch d.byteIdx {
	case frame.FDXBPayloadBytes + 1:
		d.checkCRC()
	case frame.FDXBOctetCount - 1:
		d.completion.Store(int32(decode.IntegrityPassed))
	}
}

func (d *Decoder) checkCRC() {
	got := frame.CRC16(d.groups[:frame.FDXBPayloadBytes])
	want := uint16(d.groups[frame.FDXBPayloadBytes]) | uint16(d.groups[frame.FDXBPayloadBytes+1])<<8
	if got != want {
		d.completion.Store(int32(decode.IntegrityFailed))
		d.resync()
	}
}

// resync drops frame-assembly state and returns to header search while
// preserving the edge counter, per the invariant that a resync must
// not reset the presence detector.
func (d *Decoder) resync() {
	d.state = seekHeader
	d.toggle = false
	d.tenZ = headerSeed
	d.byteIdx = 0
	d.bitIdx = 0
	d.groups = [frame.FDXBOctetCount]byte{}
	d.completion.Store(int32(decode.InProgress))
}

func boolToU16(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

var _ decode.Capability = (*Decoder)(nil)
