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

import "fmt"

// Circuit selects one of the two mutually exclusive antenna front-ends.
type Circuit int

const (
	CircuitPrimary   Circuit = 1
	CircuitSecondary Circuit = 2
)

// CircuitPins pairs an antenna's shutdown pin with the demodulator
// input line the decoder must observe when that circuit is active.
type CircuitPins struct {
	Shutdown  Pin
	Demod     Pin
	ActiveLow bool
}

// AntennaController enables exactly one of two antenna circuits, or
// neither. The shutdown lines are active-high by default (a high
// level holds the antenna shut down); ActiveLow per-circuit can be
// overridden for front-ends that invert this.
type AntennaController struct {
	platform Platform
	circuits map[Circuit]CircuitPins
	enabled  Circuit // 0 means neither circuit is enabled
}

// NewAntennaController returns a controller driving the given pin
// assignments. Both circuits start disabled.
func NewAntennaController(platform Platform, primary, secondary CircuitPins) *AntennaController {
	return &AntennaController{
		platform: platform,
		circuits: map[Circuit]CircuitPins{
			CircuitPrimary:   primary,
			CircuitSecondary: secondary,
		},
	}
}

// Enable turns on circuit and turns off the other one. It is not legal
// to enable both circuits simultaneously: this method enforces mutual
// exclusion itself.
func (a *AntennaController) Enable(circuit Circuit) error {
	pins, ok := a.circuits[circuit]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidCircuit, circuit)
	}

	for c, p := range a.circuits {
		if c == circuit {
			continue
		}
		if err := a.setShutdown(p, true); err != nil {
			return err
		}
	}
	if err := a.setShutdown(pins, false); err != nil {
		return err
	}
	a.enabled = circuit
	return nil
}

// DisableAll turns off both antenna circuits.
func (a *AntennaController) DisableAll() error {
	for _, p := range a.circuits {
		if err := a.setShutdown(p, true); err != nil {
			return err
		}
	}
	a.enabled = 0
	return nil
}

// DemodPin returns the input line the decoder must observe for the
// currently-enabled circuit. Returns false if no circuit is enabled.
func (a *AntennaController) DemodPin() (Pin, bool) {
	if a.enabled == 0 {
		return 0, false
	}
	return a.circuits[a.enabled].Demod, true
}

func (a *AntennaController) setShutdown(p CircuitPins, shutOff bool) error {
	level := shutOff
	if p.ActiveLow {
		level = !level
	}
	return a.platform.DigitalWrite(p.Shutdown, Level(level))
}
