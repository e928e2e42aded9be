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

package polling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixture "github.com/lfrfid/lfrfid-go/internal/testing"
	"github.com/lfrfid/lfrfid-go/platform/sim"
)

func TestScannerNewRejectsNilSession(t *testing.T) {
	_, err := NewScanner(nil, nil)
	require.Error(t, err)
}

func TestScannerStartStopLifecycle(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	scanner, err := NewScanner(session, testConfig())
	require.NoError(t, err)

	require.NoError(t, scanner.Start(context.Background()))
	assert.True(t, scanner.IsRunning())

	require.NoError(t, scanner.Stop())
	assert.False(t, scanner.IsRunning())
}

func TestScannerStartTwiceFails(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	scanner, err := NewScanner(session, testConfig())
	require.NoError(t, err)

	require.NoError(t, scanner.Start(context.Background()))
	defer func() { _ = scanner.Stop() }()

	err = scanner.Start(context.Background())
	assert.ErrorIs(t, err, ErrScannerAlreadyRunning)
}

func TestScannerStopWhenNotRunningIsNoop(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)

	scanner, err := NewScanner(session, testConfig())
	require.NoError(t, err)

	require.NoError(t, scanner.Stop())
	assert.False(t, scanner.IsRunning())
}

func TestScannerReportsTagDetectedCallback(t *testing.T) {
	platform := sim.New()
	clock := sim.NewClock()
	session := newTestSession(t, platform, clock)
	fireOnFirstSleep(platform, clock, testDemodPin, fixture.EncodeEM4100(0x0F, 0x01020304))

	cfg := testConfig()
	scanner, err := NewScanner(session, cfg)
	require.NoError(t, err)

	detected := make(chan string, 1)
	scanner.OnTagDetected = func(id string) error {
		select {
		case detected <- id:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, scanner.Start(ctx))
	defer func() { _ = scanner.Stop() }()

	select {
	case id := <-detected:
		assert.Equal(t, "0F01020304", id)
	case <-time.After(2 * time.Second):
		t.Fatal("tag detected callback never fired")
	}
}
