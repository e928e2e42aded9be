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

// Package fdxb decodes ISO 11784/11785 FDX-B 125 kHz biphase-encoded
// RFID tags from a stream of classified edges.
package fdxb

import "github.com/lfrfid/lfrfid-go/decode"

// Pulse-width windows in microseconds. FDX-B's half-bit width is near
// 128 µs; bounds are loose to tolerate +-25% jitter from the analog
// front-end.
const (
	shortMin = 85
	shortMax = 170
	longMin  = 200
	longMax  = 275
)

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
