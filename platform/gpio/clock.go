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

package gpio

import (
	"time"

	"golang.org/x/sys/unix"
)

// SystemClock implements lfrfid.Clock directly against
// CLOCK_MONOTONIC, bypassing the Go runtime's own monotonic reading.
// It times the session's sleeps and deadlines; the edge timestamps
// handed to decode.Capability.OnEdge come from Platform's
// AttachEdgeInterrupt (time elapsed since attachment), not from
// SystemClock.
type SystemClock struct{}

// Micros implements lfrfid.Clock.
func (SystemClock) Micros() uint32 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return uint32(time.Now().UnixMicro())
	}
	return uint32(ts.Sec*1_000_000 + ts.Nsec/1_000)
}

// Millis implements lfrfid.Clock.
func (SystemClock) Millis() uint32 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return uint32(time.Now().UnixMilli())
	}
	return uint32(ts.Sec*1_000 + ts.Nsec/1_000_000)
}

// SleepMs implements lfrfid.Clock.
func (SystemClock) SleepMs(n uint32) {
	time.Sleep(time.Duration(n) * time.Millisecond)
}
