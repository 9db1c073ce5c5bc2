/*
scheduler.go - Automated missed-shift sweep

PURPOSE:
  Periodically marks past planned shifts without an outcome as missed, for
  every user the store knows about.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - "Today" is taken in Location, so a shift is only swept once its local
    calendar day has passed
  - One user's failure is logged and does not stop the pass
  - The sweep is idempotent: already missed shifts are never touched

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  sweeper := NewMissedShiftSweeper(store, service, logger)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - shifts/lifecycle.go: SweepMissed, MissedEligible
  - cli/commands.go: One-shot sweep from the command line
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/shifts"
)

// UserLister enumerates the users a pass visits.
type UserLister interface {
	ListUsers(ctx context.Context) ([]engine.UserID, error)
}

// SweepResult summarizes one pass.
type SweepResult struct {
	Today  engine.Date
	Users  int
	Marked int
	Failed int
}

// MissedShiftSweeper handles the automated missed-shift sweep.
type MissedShiftSweeper struct {
	Users         UserLister
	Shifts        *shifts.Service
	Logger        zerolog.Logger
	Location      *time.Location
	CheckInterval time.Duration
	Enabled       bool
	Now           func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewMissedShiftSweeper creates a new sweeper.
func NewMissedShiftSweeper(users UserLister, service *shifts.Service, logger zerolog.Logger) *MissedShiftSweeper {
	return &MissedShiftSweeper{
		Users:         users,
		Shifts:        service,
		Logger:        logger.With().Str("component", "sweeper").Logger(),
		Location:      time.UTC,
		CheckInterval: time.Hour,
		Enabled:       true,
		Now:           time.Now,
	}
}

// Start begins the sweeper. Calling Start on a running sweeper is a no-op.
func (s *MissedShiftSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.Logger.Info().Msg("sweeper disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	s.Logger.Info().Dur("interval", s.CheckInterval).Msg("sweeper started")
}

// Stop stops the sweeper and waits for an in-flight pass to finish.
func (s *MissedShiftSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.Logger.Info().Msg("sweeper stopped")
}

func (s *MissedShiftSweeper) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Run immediately on start
	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-stop:
			return
		}
	}
}

// RunOnce sweeps every user for the current local day.
func (s *MissedShiftSweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	result := SweepResult{Today: engine.DateOf(s.Now().In(loc))}

	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("listing users failed")
		return result, engine.WrapStore("list users", err)
	}

	for _, userID := range users {
		if ctx.Err() != nil {
			break
		}
		result.Users++

		marked, err := s.Shifts.SweepMissed(ctx, userID, result.Today)
		result.Marked += len(marked)
		if err != nil {
			result.Failed++
			s.Logger.Error().Err(err).Str("user_id", string(userID)).Msg("sweep failed")
		}
	}

	s.Logger.Info().
		Str("today", result.Today.String()).
		Int("users", result.Users).
		Int("marked", result.Marked).
		Int("failed", result.Failed).
		Msg("missed-shift sweep complete")
	return result, nil
}
