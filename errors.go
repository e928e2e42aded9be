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
	"fmt"
)

// Kind classifies why a read session failed to return a decoded tag.
type Kind int

const (
	// KindNoPresence means too few edges arrived during the presence
	// gate window; benign, the antenna most likely sees no tag.
	KindNoPresence Kind = iota
	// KindTimeout means edges arrived but no frame reached
	// IntegrityPassed before readTime elapsed; benign.
	KindTimeout
	// KindIntegrityFailed means a frame completed but its parity or
	// CRC check failed. The decoder resyncs on its own, and Read never
	// returns an error of this Kind.
	KindIntegrityFailed
	// KindInvalidArgument means a parameter violated a session
	// precondition (checkDelay, readTime, circuit, or protocol).
	KindInvalidArgument
)

// String renders the Kind for logging.
func (k Kind) String() string {
	switch k {
	case KindNoPresence:
		return "no_presence"
	case KindTimeout:
		return "timeout"
	case KindIntegrityFailed:
		return "integrity_failed"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// SessionError reports a failure from a read session operation. It
// wraps the underlying cause (if any) and classifies it with a Kind so
// callers can distinguish benign outcomes (no tag present) from
// programmer misuse (bad arguments).
type SessionError struct {
	Op       string
	Protocol string
	Kind     Kind
	Err      error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lfrfid: %s (%s, %s): %v", e.Op, e.Protocol, e.Kind, e.Err)
	}
	return fmt.Sprintf("lfrfid: %s (%s, %s)", e.Op, e.Protocol, e.Kind)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Sentinel errors for conditions callers commonly test for with
// errors.Is.
var (
	ErrNoTagDetected   = errors.New("lfrfid: no tag detected")
	ErrSessionBusy     = errors.New("lfrfid: session already in progress")
	ErrInvalidCircuit  = errors.New("lfrfid: invalid antenna circuit")
	ErrInvalidProtocol = errors.New("lfrfid: invalid protocol")
	ErrInvalidTiming   = errors.New("lfrfid: invalid checkDelay/readTime")
)

// IsRetryable reports whether a failed read is worth retrying
// unmodified: NoPresence and Timeout are retryable (the tag may simply
// not have been presented yet), while InvalidArgument never is.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var se *SessionError
	if errors.As(err, &se) {
		switch se.Kind {
		case KindNoPresence, KindTimeout, KindIntegrityFailed:
			return true
		case KindInvalidArgument:
			return false
		}
	}

	switch {
	case errors.Is(err, ErrNoTagDetected):
		return true
	case errors.Is(err, ErrSessionBusy):
		return true
	case errors.Is(err, ErrInvalidCircuit), errors.Is(err, ErrInvalidProtocol), errors.Is(err, ErrInvalidTiming):
		return false
	}
	return false
}
