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

// Package lfrfid drives a single low-frequency RFID read attempt: pick
// an antenna circuit, arm the matching protocol decoder, wait for
// presence and completion or a timeout, and report the outcome. The
// protocol-specific decoders live in decode/em4100 and decode/fdxb;
// this package never inspects their internals beyond the shared
// decode.Capability contract.
package lfrfid

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfrfid/lfrfid-go/decode"
)

// Protocol selects which decoder a read session arms.
type Protocol int

const (
	ProtocolEM4100 Protocol = iota
	ProtocolFDXB
)

func (p Protocol) String() string {
	switch p {
	case ProtocolEM4100:
		return "EM4100"
	case ProtocolFDXB:
		return "FDX-B"
	default:
		return "unknown"
	}
}

// defaultPresenceGateSlack is an empirical constant: a valid tag
// produces roughly one edge per millisecond of background activity, so
// at most (checkDelay - slack) edges during the presence gate window is
// taken as "no tag attached".
const defaultPresenceGateSlack = 25

// Result carries the outcome of a single read session: whether a tag
// was decoded, the raw frame bytes (protocol-specific layout, see
// decode/em4100.Present and decode/fdxb.Present), and diagnostics.
type Result struct {
	Decoded   bool
	Protocol  Protocol
	Raw       []byte
	EdgeCount uint32
	Duration  time.Duration
}

// Session orchestrates read attempts against one antenna hardware
// setup. It is not reentrant: Read rejects a concurrent call with
// ErrSessionBusy rather than interleaving two attempts against the
// same antenna hardware.
type Session struct {
	platform Platform
	clock    Clock
	antenna  *AntennaController
	logger   zerolog.Logger

	presenceGateSlack uint32

	em4100 decode.Capability
	fdxb   decode.Capability

	mu   sync.Mutex
	busy bool
}

// NewSession constructs a Session over platform, wiring it to the
// given antenna controller and the given EM4100/FDX-B decoders.
// Apply options to override the clock, logger, or presence-gate slack.
func NewSession(platform Platform, antenna *AntennaController, em4100, fdxb decode.Capability, opts ...Option) (*Session, error) {
	s := &Session{
		platform:          platform,
		antenna:           antenna,
		clock:             nil,
		logger:            zerolog.Nop(),
		presenceGateSlack: defaultPresenceGateSlack,
		em4100:            em4100,
		fdxb:              fdxb,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.clock == nil {
		return nil, &SessionError{Op: "NewSession", Kind: KindInvalidArgument, Err: errNilClock}
	}

	return s, nil
}

var errNilClock = sessionConfigError("a Clock must be supplied via WithClock")

type sessionConfigError string

func (e sessionConfigError) Error() string { return string(e) }

// decoderFor returns the armed decoder's capability for protocol.
func (s *Session) decoderFor(protocol Protocol) (decode.Capability, error) {
	switch protocol {
	case ProtocolEM4100:
		return s.em4100, nil
	case ProtocolFDXB:
		return s.fdxb, nil
	default:
		return nil, &SessionError{Op: "Read", Kind: KindInvalidArgument, Err: ErrInvalidProtocol}
	}
}

// Read drives one full read attempt: enable the antenna, arm the
// decoder, sleep checkDelay, evaluate the presence gate, then poll
// with 1ms granularity until readTime elapses or the decoder reports
// IntegrityPassed.
func (s *Session) Read(protocol Protocol, circuit Circuit, checkDelay, readTime time.Duration) (Result, error) {
	if checkDelay < 25*time.Millisecond {
		return Result{}, &SessionError{Op: "Read", Protocol: protocol.String(), Kind: KindInvalidArgument, Err: ErrInvalidTiming}
	}
	if readTime < checkDelay {
		return Result{}, &SessionError{Op: "Read", Protocol: protocol.String(), Kind: KindInvalidArgument, Err: ErrInvalidTiming}
	}

	decoder, err := s.decoderFor(protocol)
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Result{}, &SessionError{Op: "Read", Protocol: protocol.String(), Kind: KindInvalidArgument, Err: ErrSessionBusy}
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	start := s.clock.Millis()

	if err := s.antenna.Enable(circuit); err != nil {
		return Result{}, &SessionError{Op: "Read", Protocol: protocol.String(), Kind: KindInvalidArgument, Err: err}
	}
	defer func() {
		if err := s.antenna.DisableAll(); err != nil {
			s.logger.Debug().Err(err).Msg("antenna disable failed")
		}
	}()

	demodPin, ok := s.antenna.DemodPin()
	if !ok {
		return Result{}, &SessionError{Op: "Read", Protocol: protocol.String(), Kind: KindInvalidArgument, Err: ErrInvalidCircuit}
	}

	decoder.Arm()
	if err := s.platform.AttachEdgeInterrupt(demodPin, BothEdges, func(nowMicros uint32, level Level) {
		decoder.OnEdge(nowMicros, bool(level))
	}); err != nil {
		return Result{}, &SessionError{Op: "Read", Protocol: protocol.String(), Kind: KindInvalidArgument, Err: err}
	}
	defer func() {
		if err := s.platform.DetachEdgeInterrupt(demodPin); err != nil {
			s.logger.Debug().Err(err).Msg("edge interrupt detach failed")
		}
	}()

	s.clock.SleepMs(uint32(checkDelay / time.Millisecond))

	checkDelayMs := uint32(checkDelay / time.Millisecond)
	_, edgeCount := decoder.Poll()
	if edgeCount <= saturatingSub(checkDelayMs, s.presenceGateSlack) {
		s.logger.Debug().Str("protocol", protocol.String()).Uint32("edges", edgeCount).Msg("no presence")
		return Result{Decoded: false, Protocol: protocol, EdgeCount: edgeCount, Duration: s.elapsed(start)}, nil
	}

	deadline := start + uint32(readTime/time.Millisecond)
	for {
		state, edgeCount := decoder.Poll()
		if state == decode.IntegrityPassed {
			raw := decoder.Extract()
			s.logger.Debug().Str("protocol", protocol.String()).Uint32("edges", edgeCount).Msg("frame decoded")
			return Result{Decoded: true, Protocol: protocol, Raw: raw, EdgeCount: edgeCount, Duration: s.elapsed(start)}, nil
		}
		if s.clock.Millis() >= deadline {
			s.logger.Debug().Str("protocol", protocol.String()).Uint32("edges", edgeCount).Msg("timed out")
			return Result{Decoded: false, Protocol: protocol, EdgeCount: edgeCount, Duration: s.elapsed(start)}, nil
		}
		s.clock.SleepMs(1)
	}
}

func (s *Session) elapsed(startMs uint32) time.Duration {
	return time.Duration(s.clock.Millis()-startMs) * time.Millisecond
}

// Shutdown disables both antenna circuits. Idempotent: calling it
// repeatedly, including with no read ever started, always leaves both
// circuits off.
func (s *Session) Shutdown() error {
	return s.antenna.DisableAll()
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
