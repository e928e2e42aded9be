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

/*
Package lfrfid provides a pure Go library for reading 125 kHz
low-frequency RFID tags from the demodulated output of an analog
front-end, supporting two tag families: EM4100 (Manchester-encoded,
row+column parity) and ISO 11784/11785 FDX-B (biphase-encoded,
CRC-16/X-25).

The hard problem lives entirely in decode/em4100 and decode/fdxb:
recovering a valid tag identifier from a stream of interrupt-delivered
edges using only edge timestamps and line level, under tight timing
windows and without blocking, allocating, or formatting strings inside
the edge-delivery context. This package (lfrfid) is the orchestration
layer on top of those decoders: it owns the antenna circuits, arms the
right decoder for a read attempt, and reduces the outcome to a single
Result.

Basic usage:

	platform, err := gpio.New()
	if err != nil {
		log.Fatal(err)
	}
	clock := gpio.SystemClock{}
	antenna := lfrfid.NewAntennaController(platform, primaryPins, secondaryPins)

	session, err := lfrfid.NewSession(platform, antenna, em4100.New(), fdxb.New(),
		lfrfid.WithClock(clock),
	)
	if err != nil {
		log.Fatal(err)
	}

	ok, result, err := session.FastRead(lfrfid.CircuitPrimary, 100*time.Millisecond, 500*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}
	if ok {
		_, _, hexString, _ := lfrfid.ProcessEM4100(result.Raw)
		fmt.Println(hexString)
	}

Features:
  - EM4100 and FDX-B decoding with documented source-behavior quirks
    preserved (row-parity convention, FDX-B framing-violation resync)
  - Protocol-polymorphic read session: one orchestration path for both
    decoders via the shared decode.Capability contract
  - Antenna mutual exclusion with configurable enable polarity
  - A real GPIO Platform backed by periph.io, and an in-memory fake for
    deterministic tests
*/
package lfrfid
