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
	"fmt"

	"github.com/lfrfid/lfrfid-go/internal/frame"
)

// Frame is a validated FDX-B payload.
type Frame struct {
	AnimalID  uint64 // 38-bit animal number
	Country   uint16 // 10-bit country code
	Extension byte   // byte[10], the extension indicator
}

// Format renders the frame as "CCC.NNNNNNNNNN": a 3-hex-digit country
// code, a dot, and a 10-hex-digit animal identifier, both uppercase.
func (f Frame) Format() string {
	return fmt.Sprintf("%03X.%010X", f.Country, f.AnimalID)
}

// Present converts the raw 13-octet assembly returned by
// Decoder.Extract into a formatted Frame. This is the FDX-B
// presentation helper (process_fdxb in the exposed API).
func Present(raw []byte) (Frame, error) {
	if len(raw) != frame.FDXBOctetCount {
		return Frame{}, fmt.Errorf("fdxb: raw frame must be %d bytes, got %d", frame.FDXBOctetCount, len(raw))
	}

	animal := uint64(raw[0]) | uint64(raw[1])<<8 | uint64(raw[2])<<16 | uint64(raw[3])<<24 | uint64(raw[4]&0x3F)<<32
	country := uint16(raw[5])<<2 | uint16(raw[4]>>6)

	return Frame{
		AnimalID:  animal,
		Country:   country,
		Extension: raw[10],
	}, nil
}

// LowIdentifier returns the animal identifier's low-order 32 bits,
// built directly from raw bytes[0..3]. This is the value the exposed
// API's process_fdxb returns as its identifier: the full 38-bit
// AnimalID (byte[4]'s extra bits included) is used only for Format.
func LowIdentifier(raw []byte) (uint32, error) {
	if len(raw) != frame.FDXBOctetCount {
		return 0, fmt.Errorf("fdxb: raw frame must be %d bytes, got %d", frame.FDXBOctetCount, len(raw))
	}
	return uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24, nil
}
