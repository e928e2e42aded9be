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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain no tag sentinel", ErrNoTagDetected, true},
		{"session busy sentinel", ErrSessionBusy, true},
		{"invalid circuit sentinel", ErrInvalidCircuit, false},
		{"invalid protocol sentinel", ErrInvalidProtocol, false},
		{"invalid timing sentinel", ErrInvalidTiming, false},
		{"unrelated error", errors.New("boom"), false},
		{
			"SessionError kind NoPresence",
			&SessionError{Op: "Read", Protocol: "em4100", Kind: KindNoPresence},
			true,
		},
		{
			"SessionError kind Timeout",
			&SessionError{Op: "Read", Protocol: "fdxb", Kind: KindTimeout},
			true,
		},
		{
			"SessionError kind IntegrityFailed",
			&SessionError{Op: "Read", Protocol: "em4100", Kind: KindIntegrityFailed},
			true,
		},
		{
			"SessionError kind InvalidArgument",
			&SessionError{Op: "Read", Protocol: "em4100", Kind: KindInvalidArgument, Err: ErrInvalidTiming},
			false,
		},
		{
			"wrapped SessionError",
			&SessionError{Op: "Read", Protocol: "em4100", Kind: KindNoPresence, Err: ErrNoTagDetected},
			true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestSessionErrorUnwrapAndIs(t *testing.T) {
	t.Parallel()

	se := &SessionError{Op: "Read", Protocol: "em4100", Kind: KindInvalidArgument, Err: ErrInvalidCircuit}
	assert.ErrorIs(t, se, ErrInvalidCircuit)
	assert.Equal(t, ErrInvalidCircuit, se.Unwrap())
}

func TestSessionErrorMessageIncludesOpProtocolKind(t *testing.T) {
	t.Parallel()

	se := &SessionError{Op: "Read", Protocol: "fdxb", Kind: KindTimeout}
	assert.Contains(t, se.Error(), "Read")
	assert.Contains(t, se.Error(), "fdxb")
	assert.Contains(t, se.Error(), "timeout")
}

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindNoPresence, "no_presence"},
		{KindTimeout, "timeout"},
		{KindIntegrityFailed, "integrity_failed"},
		{KindInvalidArgument, "invalid_argument"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
