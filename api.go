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

package lfrfid

import (
	"time"

	"github.com/lfrfid/lfrfid-go/decode/em4100"
	"github.com/lfrfid/lfrfid-go/decode/fdxb"
)

// FastRead runs one EM4100 read attempt and reduces the outcome to a
// simple boolean: true on a successfully decoded frame. Call
// ProcessEM4100 on a true result's raw frame (or inspect the Result
// returned alongside, for callers that want the richer diagnostics)
// to obtain the formatted identifier.
func (s *Session) FastRead(circuit Circuit, checkDelay, readTime time.Duration) (bool, Result, error) {
	res, err := s.Read(ProtocolEM4100, circuit, checkDelay, readTime)
	if err != nil {
		return false, res, err
	}
	return res.Decoded, res, nil
}

// ISOFastRead runs one FDX-B read attempt and reduces the outcome to a
// simple boolean, mirroring FastRead for the FDX-B protocol.
func (s *Session) ISOFastRead(circuit Circuit, checkDelay, readTime time.Duration) (bool, Result, error) {
	res, err := s.Read(ProtocolFDXB, circuit, checkDelay, readTime)
	if err != nil {
		return false, res, err
	}
	return res.Decoded, res, nil
}

// ProcessEM4100 is the presentation helper for a decoded EM4100 frame:
// it returns the user byte, the 32-bit identifier, and the
// 10-character hex string.
func ProcessEM4100(raw []byte) (userByte byte, identifier uint32, hexString string, err error) {
	frm, err := em4100.Present(raw)
	if err != nil {
		return 0, 0, "", err
	}
	return frm.User, frm.Identifier, frm.Format(), nil
}

// ProcessFDXB is the presentation helper for a decoded FDX-B frame: it
// returns the country code, the extension indicator byte, the
// identifier's low-order 32 bits, and the "CCC.NNNNNNNNNN" formatted
// string (which carries the full 38-bit animal number).
func ProcessFDXB(raw []byte) (country uint16, extension byte, identifier uint32, formatted string, err error) {
	frm, err := fdxb.Present(raw)
	if err != nil {
		return 0, 0, 0, "", err
	}
	identifier, err = fdxb.LowIdentifier(raw)
	if err != nil {
		return 0, 0, 0, "", err
	}
	return frm.Country, frm.Extension, identifier, frm.Format(), nil
}
