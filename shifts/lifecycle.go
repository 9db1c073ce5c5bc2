package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
)

// =============================================================================
// SHIFT SERVICE - Writes that pair with the pure rules
// =============================================================================

// DefaultDeductionPercent is used for net income when a user has no profile.
var DefaultDeductionPercent = decimal.NewFromInt(30)

// Service performs the store-backed transitions. It holds no state between
// calls; concurrent calls for the same shift are not serialized here, the
// store's unique constraints are the guard.
type Service struct {
	Store  engine.Store
	Logger zerolog.Logger

	// NewID and Now are replaceable for deterministic tests.
	NewID func() string
	Now   func() time.Time
}

func NewService(store engine.Store, logger zerolog.Logger) *Service {
	return &Service{
		Store:  store,
		Logger: logger.With().Str("component", "shifts").Logger(),
		NewID:  uuid.NewString,
		Now:    time.Now,
	}
}

// =============================================================================
// ADMIT / EDIT / DELETE
// =============================================================================

// ScheduleShift admits a new planned shift after an overlap check.
// Returns *engine.OverlapError (Conflict) if it intersects a non-missed shift.
func (s *Service) ScheduleShift(ctx context.Context, userID engine.UserID, shift engine.PlannedShift) (engine.PlannedShift, error) {
	shift.UserID = userID
	shift.Status = engine.StatusPlanned
	if shift.ID == "" {
		shift.ID = engine.ShiftID(s.NewID())
	}
	if err := s.prepare(ctx, &shift); err != nil {
		return engine.PlannedShift{}, err
	}
	if err := s.checkOverlap(ctx, shift, ""); err != nil {
		return engine.PlannedShift{}, err
	}

	now := s.Now().UTC()
	shift.CreatedAt, shift.UpdatedAt = now, now
	if err := s.Store.CreateShift(ctx, shift); err != nil {
		return engine.PlannedShift{}, engine.WrapStore("create shift", err)
	}

	s.Logger.Info().
		Str("user_id", string(userID)).
		Str("shift_id", string(shift.ID)).
		Str("date", shift.Date.String()).
		Msg("shift scheduled")
	return shift, nil
}

// UpdateShift edits an existing shift, excluding it from its own overlap check.
// Status is not editable here; use CompleteShift or MarkMissed.
func (s *Service) UpdateShift(ctx context.Context, userID engine.UserID, shift engine.PlannedShift) (engine.PlannedShift, error) {
	existing, err := s.owned(ctx, userID, shift.ID)
	if err != nil {
		return engine.PlannedShift{}, err
	}

	shift.UserID = userID
	shift.Status = existing.Status
	shift.CreatedAt = existing.CreatedAt
	if err := s.prepare(ctx, &shift); err != nil {
		return engine.PlannedShift{}, err
	}
	if err := s.checkOverlap(ctx, shift, shift.ID); err != nil {
		return engine.PlannedShift{}, err
	}

	shift.UpdatedAt = s.Now().UTC()
	if err := s.Store.UpdateShift(ctx, shift); err != nil {
		return engine.PlannedShift{}, engine.WrapStore("update shift", err)
	}
	return shift, nil
}

// DeleteShift removes a shift the user owns, with its outcome.
func (s *Service) DeleteShift(ctx context.Context, userID engine.UserID, shiftID engine.ShiftID) error {
	if _, err := s.owned(ctx, userID, shiftID); err != nil {
		return err
	}
	if err := s.Store.DeleteShift(ctx, shiftID); err != nil {
		return engine.WrapStore("delete shift", err)
	}
	return nil
}

// CheckOverlap is the dry-run form of the admission check.
func (s *Service) CheckOverlap(ctx context.Context, userID engine.UserID, c Candidate, excludeID engine.ShiftID) ([]engine.PlannedShift, error) {
	window := NeighbourWindow(c)
	existing, err := s.Store.ListShifts(ctx, userID, &window)
	if err != nil {
		return nil, engine.WrapStore("list shifts", err)
	}
	return DetectOverlap(c, existing, excludeID), nil
}

func (s *Service) checkOverlap(ctx context.Context, shift engine.PlannedShift, excludeID engine.ShiftID) error {
	conflicts, err := s.CheckOverlap(ctx, shift.UserID, CandidateFor(shift), excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &engine.OverlapError{Conflicts: conflicts}
	}
	return nil
}

// prepare validates the shift and resolves the employer's default rate.
func (s *Service) prepare(ctx context.Context, shift *engine.PlannedShift) error {
	if shift.Date.IsZero() {
		return &engine.FieldError{Field: "shift_date", Reason: "required"}
	}
	if shift.StartTime == shift.EndTime {
		return &engine.FieldError{Field: "end_time", Reason: "must differ from start_time"}
	}
	if shift.HourlyRate.IsNegative() {
		return &engine.FieldError{Field: "hourly_rate", Reason: "must be non-negative"}
	}
	if shift.LunchBreakMinutes < 0 {
		return &engine.FieldError{Field: "lunch_break_minutes", Reason: "must be non-negative"}
	}
	if shift.EmployerID == nil {
		return nil
	}

	emp, err := s.Store.GetEmployer(ctx, *shift.EmployerID)
	if err != nil {
		return engine.WrapStore("get employer", err)
	}
	if emp.UserID != shift.UserID {
		return fmt.Errorf("employer %s: %w", emp.ID, engine.ErrUnauthorized)
	}
	if !emp.Active {
		return &engine.FieldError{Field: "employer_id", Reason: "employer is inactive"}
	}
	if shift.HourlyRate.IsZero() {
		shift.HourlyRate = emp.DefaultHourlyRate
	}
	return nil
}

// owned loads a shift and checks the caller owns it.
func (s *Service) owned(ctx context.Context, userID engine.UserID, shiftID engine.ShiftID) (engine.PlannedShift, error) {
	shift, err := s.Store.GetShift(ctx, shiftID)
	if err != nil {
		return engine.PlannedShift{}, engine.WrapStore("get shift", err)
	}
	if shift.UserID != userID {
		return engine.PlannedShift{}, fmt.Errorf("shift %s: %w", shiftID, engine.ErrUnauthorized)
	}
	return shift, nil
}

// =============================================================================
// COMPLETE - Two-step: persist outcome, then flip status
// =============================================================================

// CompleteShift records the outcome for a shift and marks it completed.
//
// Order matters:
//  1. The outcome is persisted (snapshot fields stamped from the shift's
//     rate and the user's deduction percentage).
//  2. Only on success, the stored status becomes completed.
//
// If step 1 fails the shift keeps its prior status. With a TxStore both
// steps commit together. Without one, a failure in step 2 is logged and
// not returned: the outcome exists, and the derived status already reads
// completed from it.
func (s *Service) CompleteShift(ctx context.Context, userID engine.UserID, shiftID engine.ShiftID, outcome engine.LoggedOutcome) (engine.ReconciledShift, error) {
	shift, err := s.owned(ctx, userID, shiftID)
	if err != nil {
		return engine.ReconciledShift{}, err
	}
	if err := outcome.Validate(); err != nil {
		return engine.ReconciledShift{}, err
	}

	if outcome.ID == "" {
		outcome.ID = engine.EntryID(s.NewID())
	}
	outcome.ShiftID = shift.ID
	outcome.UserID = userID
	outcome.CreatedAt = s.Now().UTC()
	outcome = outcome.WithSnapshot(shift.HourlyRate, s.deductionPercent(ctx, userID))

	if txs, ok := s.Store.(engine.TxStore); ok {
		err = txs.WithTx(ctx, func(tx engine.Store) error {
			if err := tx.CreateEntry(ctx, outcome); err != nil {
				return engine.WrapStore("create entry", err)
			}
			if err := tx.SetShiftStatus(ctx, shift.ID, engine.StatusCompleted); err != nil {
				return engine.WrapStore("set status", err)
			}
			return nil
		})
		if err != nil {
			return engine.ReconciledShift{}, err
		}
	} else {
		if err := s.Store.CreateEntry(ctx, outcome); err != nil {
			return engine.ReconciledShift{}, engine.WrapStore("create entry", err)
		}
		if err := s.Store.SetShiftStatus(ctx, shift.ID, engine.StatusCompleted); err != nil {
			s.Logger.Warn().Err(err).
				Str("shift_id", string(shift.ID)).
				Msg("outcome saved but status update failed")
		}
	}

	shift.Status = engine.StatusCompleted
	result := engine.ReconciledShift{Shift: shift, Outcome: &outcome}
	if shift.EmployerID != nil {
		if emp, err := s.Store.GetEmployer(ctx, *shift.EmployerID); err == nil {
			result.Employer = &emp
		}
	}

	s.Logger.Info().
		Str("user_id", string(userID)).
		Str("shift_id", string(shift.ID)).
		Str("hours", outcome.ActualHours.String()).
		Msg("shift completed")
	return result, nil
}

func (s *Service) deductionPercent(ctx context.Context, userID engine.UserID) decimal.Decimal {
	p, err := s.Store.GetProfile(ctx, userID)
	if err != nil || p.DeductionPercent.IsZero() {
		return DefaultDeductionPercent
	}
	return p.DeductionPercent
}

// =============================================================================
// MARK MISSED
// =============================================================================

// MarkMissed sets the stored status to missed. Idempotent: an already
// missed shift is a no-op. Eligibility is the caller's (or the sweep's)
// decision.
func (s *Service) MarkMissed(ctx context.Context, userID engine.UserID, shiftID engine.ShiftID) error {
	shift, err := s.owned(ctx, userID, shiftID)
	if err != nil {
		return err
	}
	if shift.Status == engine.StatusMissed {
		return nil
	}
	if err := s.Store.SetShiftStatus(ctx, shiftID, engine.StatusMissed); err != nil {
		return engine.WrapStore("set status", err)
	}
	return nil
}

// MissedEligible reports whether the daily sweep should mark the shift missed:
// its date is before today, it has no outcome, and it is not missed already.
func MissedEligible(shift engine.PlannedShift, hasOutcome bool, today engine.Date) bool {
	return shift.Date.Before(today) && !hasOutcome && shift.Status != engine.StatusMissed
}

// SweepMissed marks every eligible shift of the user as missed. A failure on
// one shift does not stop the rest; failures are joined into the error.
func (s *Service) SweepMissed(ctx context.Context, userID engine.UserID, today engine.Date) ([]engine.ShiftID, error) {
	before := engine.DateRange{Start: engine.Date{}, End: today.AddDays(-1)}
	planned, err := s.Store.ListShifts(ctx, userID, &before)
	if err != nil {
		return nil, engine.WrapStore("list shifts", err)
	}
	outcomes, err := s.Store.ListEntries(ctx, userID, &before)
	if err != nil {
		return nil, engine.WrapStore("list entries", err)
	}

	logged := make(map[engine.ShiftID]bool, len(outcomes))
	for _, o := range outcomes {
		logged[o.ShiftID] = true
	}

	var (
		marked []engine.ShiftID
		errs   []error
	)
	for _, shift := range planned {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !MissedEligible(shift, logged[shift.ID], today) {
			continue
		}
		if err := s.MarkMissed(ctx, userID, shift.ID); err != nil {
			errs = append(errs, fmt.Errorf("shift %s: %w", shift.ID, err))
			continue
		}
		marked = append(marked, shift.ID)
	}

	if len(marked) > 0 {
		s.Logger.Info().
			Str("user_id", string(userID)).
			Int("marked", len(marked)).
			Msg("missed shifts swept")
	}
	return marked, errors.Join(errs...)
}

// =============================================================================
// READ
// =============================================================================

// ListReconciled fetches and joins a user's shifts for the window.
func (s *Service) ListReconciled(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.ReconciledShift, error) {
	planned, err := s.Store.ListShifts(ctx, userID, window)
	if err != nil {
		return nil, engine.WrapStore("list shifts", err)
	}
	outcomes, err := s.Store.ListEntries(ctx, userID, window)
	if err != nil {
		return nil, engine.WrapStore("list entries", err)
	}
	employers, err := s.Store.ListEmployers(ctx, userID, true)
	if err != nil {
		return nil, engine.WrapStore("list employers", err)
	}
	return Reconcile(planned, outcomes, employers, window), nil
}
