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

package lfrfid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/lfrfid/lfrfid-go"
	"github.com/lfrfid/lfrfid-go/decode/em4100"
	"github.com/lfrfid/lfrfid-go/decode/fdxb"
	fixture "github.com/lfrfid/lfrfid-go/internal/testing"
	"github.com/lfrfid/lfrfid-go/platform/sim"
)

const (
	primaryShutdown   = Pin(10)
	primaryDemod      = Pin(11)
	secondaryShutdown = Pin(20)
	secondaryDemod    = Pin(21)
)

func newTestSession(t *testing.T, platform *sim.Platform, clock *sim.Clock) *Session {
	t.Helper()
	antenna := NewAntennaController(platform,
		CircuitPins{Shutdown: primaryShutdown, Demod: primaryDemod},
		CircuitPins{Shutdown: secondaryShutdown, Demod: secondaryDemod},
	)
	session, err := NewSession(platform, antenna, em4100.New(), fdxb.New(), WithClock(clock))
	require.NoError(t, err)
	return session
}

// fireOnFirstSleep plays edges into pin the first time clock.SleepMs is
// called (the checkDelay sleep), so the presence gate and frame
// assembly both see the full stream before the session ever polls.
func fireOnFirstSleep(platform *sim.Platform, clock *sim.Clock, pin Pin, edges []fixture.Edge) {
	fired := false
	clock.OnSleep = func(uint32) {
		if fired {
			return
		}
		fired = true
		var now uint32
		for _, e := range edges {
			now += e.DeltaMicros
			platform.Fire(pin, now, Level(e.Level))
		}
	}
}

func TestSessionReadEM4100HappyPath(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	edges := fixture.EncodeEM4100(0x0F, 0x01020304)
	fireOnFirstSleep(platform, clock, primaryDemod, edges)

	res, err := session.Read(ProtocolEM4100, CircuitPrimary, 30*time.Millisecond, 60*time.Millisecond)
	require.NoError(t, err)
	require.True(t, res.Decoded)

	userByte, identifier, hexString, err := ProcessEM4100(res.Raw)
	require.NoError(t, err)
	assert.Equal(t, byte(0x0F), userByte)
	assert.Equal(t, uint32(0x01020304), identifier)
	assert.Equal(t, "0F01020304", hexString)
}

func TestSessionReadEM4100CorruptedRowParityNeverDecodes(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	edges := fixture.FlipEM4100Bit(fixture.EncodeEM4100(0x0F, 0x01020304), 9)
	fireOnFirstSleep(platform, clock, primaryDemod, edges)

	res, err := session.Read(ProtocolEM4100, CircuitPrimary, 30*time.Millisecond, 60*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, res.Decoded)
}

func TestSessionReadNoTagPresent(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	res, err := session.Read(ProtocolEM4100, CircuitPrimary, 100*time.Millisecond, 200*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, res.Decoded)
	assert.Equal(t, uint32(0), res.EdgeCount)
}

func TestSessionReadFDXBHappyPath(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	edges := fixture.EncodeFDXB(0x114, 0x0001A2B3C4, [3]byte{0x01, 0x02, 0x03})
	fireOnFirstSleep(platform, clock, primaryDemod, edges)

	res, err := session.Read(ProtocolFDXB, CircuitPrimary, 30*time.Millisecond, 60*time.Millisecond)
	require.NoError(t, err)
	require.True(t, res.Decoded)

	_, _, _, formatted, err := ProcessFDXB(res.Raw)
	require.NoError(t, err)
	assert.Equal(t, "114.0001A2B3C4", formatted)
}

func TestSessionReadFDXBBadCRCNeverDecodes(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	edges := fixture.FlipFDXBCRCBit(0x114, 0x0001A2B3C4, [3]byte{0x01, 0x02, 0x03})
	fireOnFirstSleep(platform, clock, primaryDemod, edges)

	res, err := session.Read(ProtocolFDXB, CircuitPrimary, 30*time.Millisecond, 60*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, res.Decoded)
}

func TestSessionReadRejectsConcurrentCalls(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	var nestedErr error
	clock.OnSleep = func(uint32) {
		clock.OnSleep = nil
		_, nestedErr = session.Read(ProtocolEM4100, CircuitSecondary, 30*time.Millisecond, 60*time.Millisecond)
	}

	_, err := session.Read(ProtocolEM4100, CircuitPrimary, 30*time.Millisecond, 60*time.Millisecond)
	require.NoError(t, err)

	require.Error(t, nestedErr)
	var sessErr *SessionError
	require.ErrorAs(t, nestedErr, &sessErr)
	assert.Equal(t, KindInvalidArgument, sessErr.Kind)
	assert.ErrorIs(t, nestedErr, ErrSessionBusy)
}

func TestSessionReadRejectsShortCheckDelay(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	_, err := session.Read(ProtocolEM4100, CircuitPrimary, 10*time.Millisecond, 60*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTiming)
}

func TestSessionReadRejectsReadTimeShorterThanCheckDelay(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	_, err := session.Read(ProtocolEM4100, CircuitPrimary, 40*time.Millisecond, 30*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTiming)
}

func TestSessionShutdownDisablesBothCircuitsIdempotently(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	require.NoError(t, session.Shutdown())
	require.NoError(t, session.Shutdown())

	assert.Equal(t, High, platform.Level(primaryShutdown))
	assert.Equal(t, High, platform.Level(secondaryShutdown))
}

func TestSessionReadLeavesAntennaDisabledAfterCompletion(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	edges := fixture.EncodeEM4100(0x0F, 0x01020304)
	fireOnFirstSleep(platform, clock, primaryDemod, edges)

	_, err := session.Read(ProtocolEM4100, CircuitPrimary, 30*time.Millisecond, 60*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, High, platform.Level(primaryShutdown))
	assert.Equal(t, High, platform.Level(secondaryShutdown))
}
