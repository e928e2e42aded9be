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

package frame

import "testing"

func TestCRC16(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0x0000,
		},
		{
			name: "single zero byte",
			data: []byte{0x00},
			want: 0x0000,
		},
		{
			name: "single byte 0x01",
			data: []byte{0x01},
			want: 0x1189,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CRC16(tt.data); got != tt.want {
				t.Errorf("CRC16(%v) = %#04x, want %#04x", tt.data, got, tt.want)
			}
		})
	}
}

func TestCRC16Deterministic(t *testing.T) {
	t.Parallel()
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	first := CRC16(data)
	second := CRC16(data)
	if first != second {
		t.Errorf("CRC16 not deterministic: %#04x != %#04x", first, second)
	}
}

func TestCRC16DetectsSingleBitFlip(t *testing.T) {
	t.Parallel()
	base := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	want := CRC16(base)

	for byteIdx := range base {
		for bit := range 8 {
			flipped := append([]byte(nil), base...)
			flipped[byteIdx] ^= 1 << bit
			if got := CRC16(flipped); got == want {
				t.Errorf("CRC16 failed to detect flip at byte %d bit %d", byteIdx, bit)
			}
		}
	}
}
