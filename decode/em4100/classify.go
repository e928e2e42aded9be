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

// Package em4100 decodes the EM4100 family of 125 kHz Manchester-encoded
// RFID tags from a stream of classified edges.
package em4100

import "github.com/lfrfid/lfrfid-go/decode"

// Pulse-width windows in microseconds. EM4100 uses a bit time of 64
// carrier cycles (512 µs at 125 kHz); SHORT is one half-bit (about
// 256 µs), LONG is a full bit. Bounds are loose to
// tolerate +-25% jitter from the analog front-end.
const (
	shortMin = 170
	shortMax = 395
	longMin  = 395
	longMax  = 600
)

// classify maps an inter-edge interval (microseconds) to a pulse class.
func classify(deltaMicros uint32) decode.PulseClass {
	switch {
	case deltaMicros > shortMin && deltaMicros < shortMax:
		return decode.PulseShort
	case deltaMicros > longMin && deltaMicros < longMax:
		return decode.PulseLong
	default:
		return decode.PulseInvalid
	}
}
