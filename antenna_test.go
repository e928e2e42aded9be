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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/lfrfid/lfrfid-go"
	"github.com/lfrfid/lfrfid-go/platform/sim"
)

// primaryShutdown, primaryDemod, secondaryShutdown, secondaryDemod are
// declared in session_test.go and shared across this package's tests.

func TestAntennaControllerEnableIsMutuallyExclusive(t *testing.T) {
	platform := sim.New()
	antenna := NewAntennaController(platform,
		CircuitPins{Shutdown: primaryShutdown, Demod: primaryDemod},
		CircuitPins{Shutdown: secondaryShutdown, Demod: secondaryDemod},
	)

	require.NoError(t, antenna.Enable(CircuitPrimary))
	assert.Equal(t, Low, platform.Level(primaryShutdown))
	assert.Equal(t, High, platform.Level(secondaryShutdown))

	require.NoError(t, antenna.Enable(CircuitSecondary))
	assert.Equal(t, High, platform.Level(primaryShutdown))
	assert.Equal(t, Low, platform.Level(secondaryShutdown))
}

func TestAntennaControllerDisableAllTurnsOffBoth(t *testing.T) {
	platform := sim.New()
	antenna := NewAntennaController(platform,
		CircuitPins{Shutdown: primaryShutdown, Demod: primaryDemod},
		CircuitPins{Shutdown: secondaryShutdown, Demod: secondaryDemod},
	)

	require.NoError(t, antenna.Enable(CircuitPrimary))
	require.NoError(t, antenna.DisableAll())

	assert.Equal(t, High, platform.Level(primaryShutdown))
	assert.Equal(t, High, platform.Level(secondaryShutdown))

	_, ok := antenna.DemodPin()
	assert.False(t, ok)
}

func TestAntennaControllerActiveLowPolarityInverts(t *testing.T) {
	platform := sim.New()
	antenna := NewAntennaController(platform,
		CircuitPins{Shutdown: primaryShutdown, Demod: primaryDemod, ActiveLow: true},
		CircuitPins{Shutdown: secondaryShutdown, Demod: secondaryDemod},
	)

	require.NoError(t, antenna.Enable(CircuitPrimary))
	// Primary is active-low, so "enabled" drives its shutdown line High
	// rather than Low.
	assert.Equal(t, High, platform.Level(primaryShutdown))
	assert.Equal(t, High, platform.Level(secondaryShutdown))
}

func TestAntennaControllerDemodPinTracksEnabledCircuit(t *testing.T) {
	platform := sim.New()
	antenna := NewAntennaController(platform,
		CircuitPins{Shutdown: primaryShutdown, Demod: primaryDemod},
		CircuitPins{Shutdown: secondaryShutdown, Demod: secondaryDemod},
	)

	_, ok := antenna.DemodPin()
	assert.False(t, ok)

	require.NoError(t, antenna.Enable(CircuitSecondary))
	pin, ok := antenna.DemodPin()
	require.True(t, ok)
	assert.Equal(t, secondaryDemod, pin)
}

func TestAntennaControllerEnableUnknownCircuitFails(t *testing.T) {
	platform := sim.New()
	antenna := NewAntennaController(platform,
		CircuitPins{Shutdown: primaryShutdown, Demod: primaryDemod},
		CircuitPins{Shutdown: secondaryShutdown, Demod: secondaryDemod},
	)

	err := antenna.Enable(Circuit(99))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCircuit))
}
