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
	"fmt"

	"github.com/lfrfid/lfrfid-go/internal/frame"
)

// Frame is a validated EM4100 payload: 40 bits encoding a user byte and
// a 32-bit identifier.
type Frame struct {
	User       byte
	Identifier uint32
}

// Format renders the frame as 10 uppercase hex characters: the user
// byte followed by the 32-bit identifier ("0F01020304").
func (f Frame) Format() string {
	return fmt.Sprintf("%02X%08X", f.User, f.Identifier)
}

// Present converts the raw 11-group assembly returned by
// Decoder.Extract into a formatted Frame. This is the EM4100
// presentation helper (process_em4100 in the exposed API).
func Present(raw []byte) (Frame, error) {
	if len(raw) != frame.EM4100TotalGroups {
		return Frame{}, fmt.Errorf("em4100: raw frame must be %d bytes, got %d", frame.EM4100TotalGroups, len(raw))
	}
	var groups [frame.EM4100TotalGroups]byte
	copy(groups[:], raw)
	return decodeFrame(groups), nil
}

// decodeFrame extracts the 40 payload bits from the 11 raw groups by
// concatenating each row's upper 4 bits (skipping the trailing parity
// bit), then splitting the resulting 5 bytes into a user byte and a
// 32-bit identifier.
func decodeFrame(groups [frame.EM4100TotalGroups]byte) Frame {
	var payload [frame.EM4100PayloadBytes]byte
	nibble := 0
	for row := range frame.EM4100DataRows {
		upper4 := (groups[row] >> 1) & 0x0F
		if nibble%2 == 0 {
			payload[nibble/2] = upper4 << 4
		} else {
			payload[nibble/2] |= upper4
		}
		nibble++
	}

	id := uint32(payload[1])<<24 | uint32(payload[2])<<16 | uint32(payload[3])<<8 | uint32(payload[4])
	return Frame{User: payload[0], Identifier: id}
}
