/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Provides pre-built scenarios that populate one user's data with a
  realistic history. Each scenario exercises a specific feature: the
  weekly cap, the missed sweep, achievement unlocks.

AVAILABLE SCENARIOS:
  new-server:    Part-time tier, one employer, two upcoming shifts
  busy-week:     Part-time tier with the weekly shift cap already used
  tip-master:    Seven worked days in a row at 22% tips
  missed-shifts: Past shifts with no outcome, ready for the sweep

HOW SCENARIOS WORK:
 1. Save profile and subscription
 2. Create employer(s)
 3. Schedule shifts through the shifts service (overlap rules apply)
 4. Complete some of them with outcomes
 5. Run one achievement pass

Dates are relative to the handler's "today", so a scenario looks the same
whenever it is loaded. Scenarios add to existing data; loading the same one
twice for a user collides with its own shifts and answers 409.

USAGE VIA API:
  GET  /api/scenarios
  POST /api/users/{userID}/scenarios/load
  {"scenario_id": "tip-master"}

SEE ALSO:
  - handlers.go: Handler dependencies
  - cli/commands.go: scenario list/load
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	load func(ctx context.Context, h *Handler, userID engine.UserID, today engine.Date) error
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "new-server",
			Name:        "New Server",
			Description: "Part-time tier, one employer and two upcoming shifts",
			Category:    "planning",
		},
		load: loadNewServerScenario,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "busy-week",
			Name:        "Busy Week",
			Description: "Part-time tier with all three weekly shifts already scheduled",
			Category:    "quota",
		},
		load: loadBusyWeekScenario,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "tip-master",
			Name:        "Tip Master",
			Description: "Seven worked days in a row at 22% tips",
			Category:    "achievements",
		},
		load: loadTipMasterScenario,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "missed-shifts",
			Name:        "Missed Shifts",
			Description: "Past shifts without logged outcomes, ready for the sweep",
			Category:    "sweep",
		},
		load: loadMissedShiftsScenario,
	},
}

// Scenarios lists the available scenarios in display order.
func Scenarios() []ScenarioDTO {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	return dtos
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Scenarios())
}

// LoadScenario loads a predefined scenario for the path user.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	unlocked, err := h.LoadScenarioFor(r.Context(), userIDParam(r), req.ScenarioID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoadScenarioResponse{ScenarioID: req.ScenarioID, Unlocked: unlocked})
}

// LoadScenarioFor seeds the scenario for userID and runs one achievement
// pass. It returns the achievement ids the pass unlocked.
func (h *Handler) LoadScenarioFor(ctx context.Context, userID engine.UserID, scenarioID string) ([]string, error) {
	for _, s := range scenarios {
		if s.ID != scenarioID {
			continue
		}
		if err := s.load(ctx, h, userID, h.today()); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenarioID, err)
		}
		ids, err := h.Achievements.Run(ctx, userID)
		if err != nil {
			return nil, err
		}
		h.Logger.Info().
			Str("user_id", string(userID)).
			Str("scenario", scenarioID).
			Int("unlocked", len(ids)).
			Msg("scenario loaded")

		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = string(id)
		}
		return out, nil
	}
	return nil, &engine.FieldError{Field: "scenario_id", Reason: fmt.Sprintf("unknown scenario %q", scenarioID)}
}

// =============================================================================
// LOADERS
// =============================================================================

func loadNewServerScenario(ctx context.Context, h *Handler, userID engine.UserID, today engine.Date) error {
	if err := h.seedAccount(ctx, userID, engine.TierPartTime, time.Monday); err != nil {
		return err
	}
	emp, err := h.seedEmployer(ctx, userID, "Harbor Bistro", 12)
	if err != nil {
		return err
	}
	for _, offset := range []int{1, 3} {
		if _, err := h.seedShift(ctx, userID, &emp.ID, today.AddDays(offset), "17:00", "23:00"); err != nil {
			return err
		}
	}
	return nil
}

func loadBusyWeekScenario(ctx context.Context, h *Handler, userID engine.UserID, today engine.Date) error {
	if err := h.seedAccount(ctx, userID, engine.TierPartTime, today.Weekday()); err != nil {
		return err
	}
	// Week starts today, so all three land inside the current window.
	for _, offset := range []int{0, 1, 2} {
		if _, err := h.seedShift(ctx, userID, nil, today.AddDays(offset), "11:00", "19:00"); err != nil {
			return err
		}
	}
	return nil
}

func loadTipMasterScenario(ctx context.Context, h *Handler, userID engine.UserID, today engine.Date) error {
	if err := h.seedAccount(ctx, userID, engine.TierFull, time.Sunday); err != nil {
		return err
	}
	emp, err := h.seedEmployer(ctx, userID, "Rooftop Lounge", 9)
	if err != nil {
		return err
	}
	for day := 7; day >= 1; day-- {
		shift, err := h.seedShift(ctx, userID, &emp.ID, today.AddDays(-day), "18:00", "02:00")
		if err != nil {
			return err
		}
		sales := decimal.NewFromInt(int64(500 + 25*day))
		outcome := engine.LoggedOutcome{
			ActualHours: decimal.NewFromInt(8),
			Sales:       sales,
			Tips:        sales.Mul(decimal.RequireFromString("0.22")),
		}
		if _, err := h.Shifts.CompleteShift(ctx, userID, shift.ID, outcome); err != nil {
			return err
		}
	}
	return nil
}

func loadMissedShiftsScenario(ctx context.Context, h *Handler, userID engine.UserID, today engine.Date) error {
	if err := h.seedAccount(ctx, userID, engine.TierFull, time.Sunday); err != nil {
		return err
	}
	worked, err := h.seedShift(ctx, userID, nil, today.AddDays(-3), "09:00", "15:00")
	if err != nil {
		return err
	}
	if _, err := h.Shifts.CompleteShift(ctx, userID, worked.ID, engine.LoggedOutcome{
		ActualHours: decimal.NewFromInt(6),
		Tips:        decimal.NewFromInt(60),
		Sales:       decimal.NewFromInt(400),
	}); err != nil {
		return err
	}
	for _, offset := range []int{-2, -1} {
		if _, err := h.seedShift(ctx, userID, nil, today.AddDays(offset), "09:00", "15:00"); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) seedAccount(ctx context.Context, userID engine.UserID, tier engine.Tier, weekStart time.Weekday) error {
	if err := h.Store.SaveProfile(ctx, engine.Profile{
		UserID:            userID,
		WeekStart:         weekStart,
		DefaultHourlyRate: h.DefaultHourlyRate,
		Targets: engine.Targets{
			TipsDaily:   decimal.NewFromInt(100),
			TipsWeekly:  decimal.NewFromInt(500),
			HoursWeekly: decimal.NewFromInt(30),
		},
	}); err != nil {
		return err
	}
	return h.Store.SaveSubscription(ctx, engine.Subscription{
		UserID: userID,
		Tier:   tier,
		Status: engine.SubscriptionActive,
	})
}

func (h *Handler) seedEmployer(ctx context.Context, userID engine.UserID, name string, rate int64) (engine.Employer, error) {
	emp := engine.Employer{
		ID:                engine.EmployerID(h.NewID()),
		UserID:            userID,
		Name:              name,
		DefaultHourlyRate: decimal.NewFromInt(rate),
		Active:            true,
		CreatedAt:         h.Now().UTC(),
	}
	return emp, h.Store.CreateEmployer(ctx, emp)
}

func (h *Handler) seedShift(ctx context.Context, userID engine.UserID, employerID *engine.EmployerID, date engine.Date, start, end string) (engine.PlannedShift, error) {
	shift := engine.PlannedShift{
		EmployerID: employerID,
		Date:       date,
		StartTime:  engine.MustParseClockTime(start),
		EndTime:    engine.MustParseClockTime(end),
	}
	if employerID == nil {
		shift.HourlyRate = h.DefaultHourlyRate
	}
	return h.Shifts.ScheduleShift(ctx, userID, shift)
}
