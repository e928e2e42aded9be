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

// Package testing provides synthetic edge streams for exercising the
// EM4100 and FDX-B decoders without a real analog front-end.
package testing

// Edge is one (timestamp delta, line level) pair as it would be
// delivered to decode.Capability.OnEdge.
type Edge struct {
	DeltaMicros uint32
	Level       bool
}

const (
	em4100LongDelta  = 450 // within (395,600)
	em4100ShortDelta = 280 // within (170,395)

	fdxbShortDelta = 120 // within (85,170)
	fdxbLongDelta  = 230 // within (200,275)
)

// EncodeEM4100 builds the edge stream for a valid EM4100 frame carrying
// the given user byte and 32-bit identifier: a 9-ones header followed
// by 10 data rows (4 data bits + even-parity bit) and a final column-
// parity + stop group. Every bit is carried by a single LONG pulse
// (EM4100 decode only reads pulse class and level, not the physical
// transition direction, so this is sufficient to drive the decoder).
func EncodeEM4100(user byte, identifier uint32) []Edge {
	bits := em4100Bits(user, identifier)
	edges := make([]Edge, len(bits))
	for i, b := range bits {
		edges[i] = Edge{DeltaMicros: em4100LongDelta, Level: b}
	}
	return edges
}

// FlipEM4100Bit returns a copy of edges with the level of the nth
// decoded bit inverted, for corruption tests. n counts from 0 over the
// full 64-bit stream including the header.
func FlipEM4100Bit(edges []Edge, n int) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	out[n].Level = !out[n].Level
	return out
}

// EncodeEM4100WithShortBit behaves like EncodeEM4100, but re-encodes
// the nth decoded bit (same indexing as FlipEM4100Bit) as two SHORT
// pulses instead of a single LONG pulse, preserving its decoded value.
// This exercises the decoder's SHORT-pulse pairing path instead of its
// single-LONG-pulse path.
func EncodeEM4100WithShortBit(user byte, identifier uint32, n int) []Edge {
	edges := EncodeEM4100(user, identifier)
	bitLevel := edges[n].Level

	out := make([]Edge, 0, len(edges)+1)
	out = append(out, edges[:n]...)
	out = append(out,
		Edge{DeltaMicros: em4100ShortDelta, Level: !bitLevel},
		Edge{DeltaMicros: em4100ShortDelta, Level: bitLevel},
	)
	out = append(out, edges[n+1:]...)
	return out
}

func em4100Bits(user byte, identifier uint32) []bool {
	payload := [5]byte{user, byte(identifier >> 24), byte(identifier >> 16), byte(identifier >> 8), byte(identifier)}

	bits := make([]bool, 0, 9+55)
	for range 9 {
		bits = append(bits, true)
	}

	var rowBits [10][4]bool
	for row := range 10 {
		nib := em4100Nibble(row, payload)
		rowBits[row] = [4]bool{nib&0x8 != 0, nib&0x4 != 0, nib&0x2 != 0, nib&0x1 != 0}
		parity := xorAll(rowBits[row][:]...)
		bits = append(bits, rowBits[row][0], rowBits[row][1], rowBits[row][2], rowBits[row][3], parity)
	}

	var col [4]bool
	for c := range 4 {
		v := false
		for row := range 10 {
			v = v != rowBits[row][c]
		}
		col[c] = v
	}
	bits = append(bits, col[0], col[1], col[2], col[3], false) // stop bit
	return bits
}

func em4100Nibble(row int, payload [5]byte) byte {
	byteIdx := row / 2
	if row%2 == 0 {
		return (payload[byteIdx] >> 4) & 0x0F
	}
	return payload[byteIdx] & 0x0F
}

func xorAll(bs ...bool) bool {
	v := false
	for _, b := range bs {
		v = v != b
	}
	return v
}

// EncodeFDXB builds the edge stream for a valid FDX-B frame carrying
// the given 10-bit country code, 38-bit animal identifier, and 3-byte
// extension payload, with a correct CRC-16/X-25 over the 8 payload
// bytes. A 0-bit is carried by two SHORT pulses; a 1-bit by one LONG
// pulse, per the biphase encoding FDX-B uses.
func EncodeFDXB(country uint16, animalID uint64, ext [3]byte) []Edge {
	payload := fdxbPayload(country, animalID)
	crc := crc16(payload[:])
	octets := append(append([]byte{}, payload[:]...), byte(crc), byte(crc>>8))
	octets = append(octets, ext[:]...)

	var edges []Edge
	for range 10 {
		edges = append(edges, fdxbZeroBit()...)
	}
	edges = append(edges, Edge{DeltaMicros: fdxbLongDelta, Level: true}) // header framing 1

	level := false
	for _, octet := range octets {
		for bit := range 8 {
			level = !level
			if octet&(1<<bit) != 0 {
				edges = append(edges, Edge{DeltaMicros: fdxbLongDelta, Level: level})
			} else {
				edges = append(edges, fdxbZeroBit()...)
			}
		}
		level = !level
		edges = append(edges, Edge{DeltaMicros: fdxbLongDelta, Level: level}) // stuffing marker bit
	}
	return edges
}

// FlipFDXBCRCBit flips one bit of the CRC field (the 9th octet, i.e.
// the low CRC byte) in an otherwise-valid FDX-B edge stream built by
// EncodeFDXB, by re-synthesizing the stream with a corrupted CRC value
// taken from the real one.
func FlipFDXBCRCBit(country uint16, animalID uint64, ext [3]byte) []Edge {
	payload := fdxbPayload(country, animalID)
	crc := crc16(payload[:]) ^ 0x0001
	octets := append(append([]byte{}, payload[:]...), byte(crc), byte(crc>>8))
	octets = append(octets, ext[:]...)

	var edges []Edge
	for range 10 {
		edges = append(edges, fdxbZeroBit()...)
	}
	edges = append(edges, Edge{DeltaMicros: fdxbLongDelta, Level: true})

	level := false
	for _, octet := range octets {
		for bit := range 8 {
			level = !level
			if octet&(1<<bit) != 0 {
				edges = append(edges, Edge{DeltaMicros: fdxbLongDelta, Level: level})
			} else {
				edges = append(edges, fdxbZeroBit()...)
			}
		}
		level = !level
		edges = append(edges, Edge{DeltaMicros: fdxbLongDelta, Level: level})
	}
	return edges
}

func fdxbZeroBit() []Edge {
	return []Edge{
		{DeltaMicros: fdxbShortDelta, Level: false},
		{DeltaMicros: fdxbShortDelta, Level: true},
	}
}

func fdxbPayload(country uint16, animalID uint64) [8]byte {
	var p [8]byte
	p[0] = byte(animalID)
	p[1] = byte(animalID >> 8)
	p[2] = byte(animalID >> 16)
	p[3] = byte(animalID >> 24)
	p[4] = byte((animalID>>32)&0x3F) | byte((country&0x3)<<6)
	p[5] = byte((country >> 2) & 0xFF)
	p[6] = 0
	p[7] = 0
	return p
}

// crc16 is a local copy of the CRC-16/X-25 used by FDX-B, duplicated
// here (rather than imported) to keep this fixture package independent
// of the decoder's internal constants package.
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b)
		for range 8 {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
