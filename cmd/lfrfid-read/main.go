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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfrfid/lfrfid-go"
	"github.com/lfrfid/lfrfid-go/decode/em4100"
	"github.com/lfrfid/lfrfid-go/decode/fdxb"
	"github.com/lfrfid/lfrfid-go/platform/gpio"
)

type config struct {
	protocol          *string
	circuit           *int
	primaryShutdown   *int
	primaryDemod      *int
	secondaryShutdown *int
	secondaryDemod    *int
	checkDelay        *time.Duration
	readTime          *time.Duration
	debug             *bool
}

func parseFlags() *config {
	cfg := &config{
		protocol:          flag.String("protocol", "em4100", "Tag protocol to read: em4100 or fdxb"),
		circuit:           flag.Int("circuit", 1, "Antenna circuit to use: 1 (primary) or 2 (secondary)"),
		primaryShutdown:   flag.Int("primary-shutdown-pin", 17, "GPIO index of the primary antenna shutdown line"),
		primaryDemod:      flag.Int("primary-demod-pin", 27, "GPIO index of the primary demodulator output line"),
		secondaryShutdown: flag.Int("secondary-shutdown-pin", 22, "GPIO index of the secondary antenna shutdown line"),
		secondaryDemod:    flag.Int("secondary-demod-pin", 23, "GPIO index of the secondary demodulator output line"),
		checkDelay:        flag.Duration("check-delay", 100*time.Millisecond, "Presence-gate settle time"),
		readTime:          flag.Duration("read-time", 500*time.Millisecond, "Total read deadline"),
		debug:             flag.Bool("debug", false, "Enable debug logging"),
	}
	flag.Parse()
	return cfg
}

func buildSession(cfg *config) (*lfrfid.Session, error) {
	platform, err := gpio.New()
	if err != nil {
		return nil, fmt.Errorf("init gpio platform: %w", err)
	}

	antenna := lfrfid.NewAntennaController(platform,
		lfrfid.CircuitPins{Shutdown: lfrfid.Pin(*cfg.primaryShutdown), Demod: lfrfid.Pin(*cfg.primaryDemod)},
		lfrfid.CircuitPins{Shutdown: lfrfid.Pin(*cfg.secondaryShutdown), Demod: lfrfid.Pin(*cfg.secondaryDemod)},
	)

	logLevel := zerolog.InfoLevel
	if *cfg.debug {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(logLevel).With().Timestamp().Logger()

	session, err := lfrfid.NewSession(platform, antenna, em4100.New(), fdxb.New(),
		lfrfid.WithClock(gpio.SystemClock{}),
		lfrfid.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("build session: %w", err)
	}
	return session, nil
}

func runRead(cfg *config, session *lfrfid.Session) error {
	circuit := lfrfid.Circuit(*cfg.circuit)

	switch *cfg.protocol {
	case "em4100":
		ok, res, err := session.FastRead(circuit, *cfg.checkDelay, *cfg.readTime)
		if err != nil {
			return fmt.Errorf("fast read: %w", err)
		}
		if !ok {
			_, _ = fmt.Println("no tag detected")
			return nil
		}
		_, _, hexString, err := lfrfid.ProcessEM4100(res.Raw)
		if err != nil {
			return fmt.Errorf("process em4100 frame: %w", err)
		}
		_, _ = fmt.Println(hexString)
		return nil
	case "fdxb":
		ok, res, err := session.ISOFastRead(circuit, *cfg.checkDelay, *cfg.readTime)
		if err != nil {
			return fmt.Errorf("iso fast read: %w", err)
		}
		if !ok {
			_, _ = fmt.Println("no tag detected")
			return nil
		}
		_, _, _, formatted, err := lfrfid.ProcessFDXB(res.Raw)
		if err != nil {
			return fmt.Errorf("process fdxb frame: %w", err)
		}
		_, _ = fmt.Println(formatted)
		return nil
	default:
		return fmt.Errorf("unknown protocol: %s", *cfg.protocol)
	}
}

func main() {
	cfg := parseFlags()

	session, err := buildSession(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to set up session: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = session.Shutdown() }()

	if err := runRead(cfg, session); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
