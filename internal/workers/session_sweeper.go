// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karchin

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/service"
)

// sessionSweeper periodically deletes expired session rows so the
// sessions table does not accumulate dead tokens. Expiry is already
// enforced on every request; the sweeper is pure housekeeping.
type sessionSweeper struct {
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

func newSessionSweeper(sessions service.SessionService, interval time.Duration, log *logger.Logger) *sessionSweeper {
	return &sessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   log,
		stop:     make(chan struct{}),
	}
}

// Run spawns a goroutine that sweeps expired sessions on every tick until
// Stop is called.
func (s *sessionSweeper) Run() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop. Safe to call more than once.
func (s *sessionSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *sessionSweeper) sweep() {
	deleted, err := s.sessions.SweepExpired(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("session sweep failed")
		return
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("swept expired sessions")
	}
}
