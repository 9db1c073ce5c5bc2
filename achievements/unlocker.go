package achievements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/shifts"
)

// =============================================================================
// UNLOCKER - One store-backed evaluation pass
// =============================================================================

// Store is the slice of the persistence layer an evaluation pass needs.
type Store interface {
	ListShifts(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.PlannedShift, error)
	ListEntries(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.LoggedOutcome, error)
	GetProfile(ctx context.Context, userID engine.UserID) (engine.Profile, error)
	ListUnlocked(ctx context.Context, userID engine.UserID) ([]engine.UserAchievement, error)
	Unlock(ctx context.Context, a engine.UserAchievement) error
}

type Unlocker struct {
	Store  Store
	Logger zerolog.Logger
	Now    func() time.Time
}

func NewUnlocker(store Store, logger zerolog.Logger) *Unlocker {
	return &Unlocker{
		Store:  store,
		Logger: logger.With().Str("component", "achievements").Logger(),
		Now:    time.Now,
	}
}

// Run evaluates the user's full history and persists every newly qualifying
// achievement. Each unlock is written on its own: a failure on one does not
// stop the others. Returned ids are the ones actually stored this pass; the
// error joins every persistence failure.
//
// A Conflict from the store means a concurrent pass already stored the
// unlock. It is not a failure and the id is not returned.
func (u *Unlocker) Run(ctx context.Context, userID engine.UserID) ([]ID, error) {
	history, rows, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[ID]bool, len(rows))
	for _, r := range rows {
		unlocked[ID(r.AchievementID)] = true
	}

	var (
		stored []ID
		errs   []error
	)
	for _, id := range Evaluate(history, unlocked) {
		err := u.Store.Unlock(ctx, engine.UserAchievement{
			UserID:        userID,
			AchievementID: string(id),
			UnlockedAt:    u.Now().UTC(),
		})
		switch {
		case err == nil:
			stored = append(stored, id)
			u.Logger.Info().
				Str("user_id", string(userID)).
				Str("achievement", string(id)).
				Msg("achievement unlocked")
		case engine.IsConflict(err):
			continue
		default:
			u.Logger.Error().Err(err).
				Str("user_id", string(userID)).
				Str("achievement", string(id)).
				Msg("unlock failed")
			errs = append(errs, fmt.Errorf("unlock %s: %w", id, engine.WrapStore("unlock", err)))
		}
	}
	return stored, errors.Join(errs...)
}

// Progress is a catalogue entry joined with the user's state.
type Progress struct {
	Definition
	Current    decimal.Decimal
	Unlocked   bool
	UnlockedAt *time.Time
}

// Progress lists every catalogue entry with the user's current value and
// unlock state, in catalogue order.
func (u *Unlocker) Progress(ctx context.Context, userID engine.UserID) ([]Progress, error) {
	history, rows, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	when := make(map[ID]time.Time, len(rows))
	for _, r := range rows {
		when[ID(r.AchievementID)] = r.UnlockedAt
	}

	result := make([]Progress, 0, len(catalog))
	for _, def := range catalog {
		p := Progress{Definition: def, Current: history.Value(def.Metric)}
		if at, ok := when[def.ID]; ok {
			p.Unlocked = true
			p.UnlockedAt = &at
		}
		result = append(result, p)
	}
	return result, nil
}

func (u *Unlocker) load(ctx context.Context, userID engine.UserID) (History, []engine.UserAchievement, error) {
	planned, err := u.Store.ListShifts(ctx, userID, nil)
	if err != nil {
		return History{}, nil, engine.WrapStore("list shifts", err)
	}
	outcomes, err := u.Store.ListEntries(ctx, userID, nil)
	if err != nil {
		return History{}, nil, engine.WrapStore("list entries", err)
	}
	profile, err := u.Store.GetProfile(ctx, userID)
	if err != nil && !engine.IsNotFound(err) {
		return History{}, nil, engine.WrapStore("get profile", err)
	}
	rows, err := u.Store.ListUnlocked(ctx, userID)
	if err != nil {
		return History{}, nil, engine.WrapStore("list unlocked", err)
	}

	history := BuildHistory(shifts.Reconcile(planned, outcomes, nil, nil), profile)
	return history, rows, nil
}
