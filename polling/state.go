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

// Package polling layers a continuous presence-detection loop on top
// of a one-shot lfrfid.Session: it repeatedly runs read attempts and
// reports tag-present/tag-removed/tag-changed transitions through
// callbacks, the way a reader mounted at a fixed gate would. The core
// read itself is untouched — this package only decides when to call
// it again.
package polling

import (
	"errors"
	"time"
)

// DetectionState is the finite state a Monitor tracks between read
// attempts.
type DetectionState int

const (
	StateIdle DetectionState = iota
	StateTagDetected
	StateReading
	StatePostReadGrace
)

// TagState tracks the identifier last seen on a circuit and the grace
// timer governing when "not seen this cycle" becomes "removed".
type TagState struct {
	LastSeenTime   time.Time
	RemovalTimer   *time.Timer
	LastIdentifier string
	DetectionState DetectionState
	Present        bool
}

// ErrNoTagInCycle indicates a single read attempt decoded nothing;
// not itself an error condition, just a negative polling result.
var ErrNoTagInCycle = errors.New("polling: no tag decoded in this cycle")

// safeTimerStop stops a timer and drains its channel if it already
// fired, so the Monitor never blocks on a stale timer send.
func safeTimerStop(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

// TransitionToReading suspends the removal timer while a (conceptually
// longer) read attempt is in flight.
func (ts *TagState) TransitionToReading() {
	ts.DetectionState = StateReading
	safeTimerStop(ts.RemovalTimer)
	ts.RemovalTimer = nil
}

// TransitionToPostReadGrace starts a short grace timer after a
// successful decode, before reverting to the normal removal timeout.
func (ts *TagState) TransitionToPostReadGrace(timeout time.Duration, callback func()) {
	ts.DetectionState = StatePostReadGrace
	safeTimerStop(ts.RemovalTimer)
	ts.RemovalTimer = time.AfterFunc(timeout/2, callback)
}

// TransitionToDetected starts the normal removal timeout: if no
// further decode refreshes it before it fires, the tag is considered
// removed.
func (ts *TagState) TransitionToDetected(timeout time.Duration, callback func()) {
	ts.DetectionState = StateTagDetected
	ts.LastSeenTime = time.Now()
	safeTimerStop(ts.RemovalTimer)
	ts.RemovalTimer = time.AfterFunc(timeout, callback)
}

// TransitionToIdle resets to the no-tag baseline.
func (ts *TagState) TransitionToIdle() {
	ts.DetectionState = StateIdle
	ts.Present = false
	ts.LastIdentifier = ""
	ts.LastSeenTime = time.Time{}
	safeTimerStop(ts.RemovalTimer)
	ts.RemovalTimer = nil
}
