package achievements_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/achievements"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/engine/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func day(date string, rate, hours, tips, sales float64) engine.ReconciledShift {
	return engine.ReconciledShift{
		Shift: engine.PlannedShift{
			ID:         engine.ShiftID(date),
			Date:       engine.MustParseDate(date),
			HourlyRate: engine.Dec(rate),
		},
		Outcome: &engine.LoggedOutcome{
			ShiftID:     engine.ShiftID(date),
			ActualHours: engine.Dec(hours),
			Tips:        engine.Dec(tips),
			Sales:       engine.Dec(sales),
		},
	}
}

func consecutive(start string, n int) []engine.ReconciledShift {
	d := engine.MustParseDate(start)
	out := make([]engine.ReconciledShift, n)
	for i := range out {
		out[i] = day(d.AddDays(i).String(), 10, 1, 0, 0)
	}
	return out
}

// =============================================================================
// CATALOGUE
// =============================================================================

func TestCatalog_TwelveEntriesInOrder(t *testing.T) {
	cat := achievements.Catalog()
	require.Len(t, cat, 12)
	assert.Equal(t, achievements.TipMaster, cat[0].ID)
	assert.Equal(t, achievements.PerfectMonth, cat[11].ID)

	seen := map[achievements.ID]bool{}
	for _, d := range cat {
		assert.False(t, seen[d.ID], "duplicate %s", d.ID)
		seen[d.ID] = true
	}

	def, ok := achievements.Lookup(achievements.SalesStar)
	require.True(t, ok)
	assert.Equal(t, achievements.BadgeGold, def.Badge)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestBuildHistory_TipPercentageSkipsZeroSales(t *testing.T) {
	h := achievements.BuildHistory([]engine.ReconciledShift{
		day("2024-01-01", 10, 4, 20, 100),
		day("2024-01-02", 10, 4, 5, 0),
		day("2024-01-03", 10, 4, 40, 200),
	}, engine.Profile{})

	assert.True(t, h.AverageTipPercentage.Equal(engine.Dec(20)))
	assert.True(t, h.BestShiftSales.Equal(engine.Dec(200)))
}

func TestBuildHistory_HourlyEarnings(t *testing.T) {
	// (15×8 + 80 + 10 − 10)/8 = 25 and (20×4 + 40)/4 = 30 -> mean 27.5
	a := day("2024-01-01", 15, 8, 80, 0)
	a.Outcome.OtherIncome = engine.Dec(10)
	a.Outcome.CashOut = engine.Dec(10)
	b := day("2024-01-02", 20, 4, 40, 0)
	zero := day("2024-01-03", 20, 0, 100, 0)

	h := achievements.BuildHistory([]engine.ReconciledShift{a, b, zero}, engine.Profile{})
	assert.True(t, h.AverageHourlyEarnings.Equal(engine.Dec(27.5)), h.AverageHourlyEarnings.String())
}

func TestBuildHistory_IgnoresUnworked(t *testing.T) {
	h := achievements.BuildHistory([]engine.ReconciledShift{
		{Shift: engine.PlannedShift{Date: engine.MustParseDate("2024-01-01"), Status: engine.StatusMissed}},
	}, engine.Profile{})
	assert.Equal(t, 0, h.LongestStreakDays)
	assert.True(t, h.AverageTipPercentage.IsZero())
}

// =============================================================================
// STREAK
// =============================================================================

func TestLongestStreak(t *testing.T) {
	d := engine.MustParseDate

	tests := []struct {
		name  string
		dates []engine.Date
		want  int
	}{
		{"empty", nil, 0},
		{"single", []engine.Date{d("2024-01-01")}, 1},
		{"gap", []engine.Date{d("2024-01-01"), d("2024-01-03")}, 1},
		{"unsorted with duplicates", []engine.Date{d("2024-01-03"), d("2024-01-01"), d("2024-01-02"), d("2024-01-02")}, 3},
		{"month boundary", []engine.Date{d("2024-01-31"), d("2024-02-01"), d("2024-02-02")}, 3},
		{"longest run is earlier", []engine.Date{
			d("2024-01-01"), d("2024-01-02"), d("2024-01-03"), d("2024-01-04"),
			d("2024-02-10"), d("2024-02-11"),
		}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, achievements.LongestStreak(tt.dates))
		})
	}
}

func TestEvaluate_SevenDayStreak(t *testing.T) {
	h := achievements.BuildHistory(consecutive("2024-01-01", 7), engine.Profile{})
	assert.Equal(t, 7, h.LongestStreakDays)

	got := achievements.Evaluate(h, nil)
	assert.Contains(t, got, achievements.SteadyTracker)
	assert.NotContains(t, got, achievements.DedicatedLogger)
}

func TestEvaluate_SixDaysIsNotAStreak(t *testing.T) {
	h := achievements.BuildHistory(consecutive("2024-01-01", 6), engine.Profile{})
	assert.NotContains(t, achievements.Evaluate(h, nil), achievements.SteadyTracker)
}

// =============================================================================
// TARGETS
// =============================================================================

func TestEvaluate_TargetCrusher(t *testing.T) {
	profile := engine.Profile{Targets: engine.Targets{TipsDaily: engine.Dec(100)}}

	// two shifts on one day add up: 90 + 60 = 150
	shifts := []engine.ReconciledShift{
		day("2024-01-01", 10, 4, 90, 0),
		day("2024-01-01", 10, 4, 60, 0),
	}
	shifts[1].Shift.ID = "second"

	h := achievements.BuildHistory(shifts, profile)
	assert.True(t, h.BestDailyTipTargetPercentage.Equal(engine.Dec(150)))
	assert.Contains(t, achievements.Evaluate(h, nil), achievements.TargetCrusher)
}

func TestEvaluate_TargetCrusher_NoTargetConfigured(t *testing.T) {
	h := achievements.BuildHistory([]engine.ReconciledShift{day("2024-01-01", 10, 4, 1000, 0)}, engine.Profile{})
	assert.NotContains(t, achievements.Evaluate(h, nil), achievements.TargetCrusher)
}

func TestEvaluate_GoalGetter_AllConfiguredWeeklyTargets(t *testing.T) {
	// GIVEN: Weekly targets tips 100 and hours 10 (sales not configured), Monday start
	// WHEN: Week of 2024-01-08 totals 120 tips and 10 hours
	// THEN: goal_getter unlocks; a week meeting only tips does not count

	profile := engine.Profile{
		WeekStart: time.Monday,
		Targets:   engine.Targets{TipsWeekly: engine.Dec(100), HoursWeekly: engine.Dec(10)},
	}

	tipsOnly := achievements.BuildHistory([]engine.ReconciledShift{
		day("2024-01-01", 10, 5, 150, 0),
	}, profile)
	assert.Equal(t, 0, tipsOnly.WeeksAllTargetsMet)

	both := achievements.BuildHistory([]engine.ReconciledShift{
		day("2024-01-08", 10, 6, 60, 0),
		day("2024-01-14", 10, 4, 60, 0), // Sunday, same Monday-start week
	}, profile)
	assert.Equal(t, 1, both.WeeksAllTargetsMet)
	assert.Contains(t, achievements.Evaluate(both, nil), achievements.GoalGetter)
}

func TestEvaluate_GoalGetter_WeekStartMatters(t *testing.T) {
	profile := engine.Profile{
		WeekStart: time.Sunday,
		Targets:   engine.Targets{TipsWeekly: engine.Dec(100)},
	}
	// Sunday 2024-01-14 starts a new Sunday-week, so these split
	h := achievements.BuildHistory([]engine.ReconciledShift{
		day("2024-01-13", 10, 1, 60, 0),
		day("2024-01-14", 10, 1, 60, 0),
	}, profile)
	assert.Equal(t, 0, h.WeeksAllTargetsMet)
}

func TestEvaluate_PerfectMonth(t *testing.T) {
	profile := engine.Profile{Targets: engine.Targets{SalesMonthly: engine.Dec(500)}}
	h := achievements.BuildHistory([]engine.ReconciledShift{
		day("2024-02-01", 10, 1, 0, 250),
		day("2024-02-29", 10, 1, 0, 250),
		day("2024-03-01", 10, 1, 0, 100),
	}, profile)
	assert.Equal(t, 1, h.MonthsAllTargetsMet)
	assert.Contains(t, achievements.Evaluate(h, nil), achievements.PerfectMonth)
}

func TestEvaluate_NoTargets_NoGoalAchievements(t *testing.T) {
	h := achievements.BuildHistory(consecutive("2024-01-01", 40), engine.Profile{})
	got := achievements.Evaluate(h, nil)
	assert.NotContains(t, got, achievements.GoalGetter)
	assert.NotContains(t, got, achievements.PerfectMonth)
}

// =============================================================================
// MONOTONICITY
// =============================================================================

func TestEvaluate_Monotonic(t *testing.T) {
	h := achievements.History{
		AverageTipPercentage: engine.Dec(26),
		BestShiftSales:       engine.Dec(1200),
	}

	first := achievements.Evaluate(h, map[achievements.ID]bool{})
	assert.Equal(t, []achievements.ID{achievements.TipMaster, achievements.EliteServer, achievements.SalesStar}, first)

	unlocked := map[achievements.ID]bool{}
	for _, id := range first {
		unlocked[id] = true
	}
	assert.Empty(t, achievements.Evaluate(h, unlocked))
}

func TestEvaluate_UnlockedIDsNeverReturned(t *testing.T) {
	got := achievements.Evaluate(achievements.History{}, map[achievements.ID]bool{achievements.TipMaster: true})
	assert.Empty(t, got)
}

// =============================================================================
// UNLOCKER
// =============================================================================

// flakyUnlocks fails the Unlock of selected ids.
type flakyUnlocks struct {
	*store.Memory
	fail map[string]bool
}

func (f *flakyUnlocks) Unlock(ctx context.Context, a engine.UserAchievement) error {
	if f.fail[a.AchievementID] {
		return errors.New("write timeout")
	}
	return f.Memory.Unlock(ctx, a)
}

func seedWorked(t *testing.T, mem *store.Memory, date string, tips, sales float64) {
	t.Helper()
	ctx := context.Background()
	id := engine.ShiftID("s-" + date)
	require.NoError(t, mem.CreateShift(ctx, engine.PlannedShift{
		ID: id, UserID: "user-1", Date: engine.MustParseDate(date),
		StartTime: engine.NewClockTime(9, 0), EndTime: engine.NewClockTime(17, 0),
		HourlyRate: engine.Dec(10), Status: engine.StatusCompleted,
	}))
	require.NoError(t, mem.CreateEntry(ctx, engine.LoggedOutcome{
		ID: engine.EntryID("e-" + date), ShiftID: id, UserID: "user-1",
		ActualHours: engine.Dec(8), Tips: engine.Dec(tips), Sales: engine.Dec(sales),
	}))
}

func TestUnlocker_RunPersistsAndIsMonotonic(t *testing.T) {
	mem := store.NewMemory()
	seedWorked(t, mem, "2024-01-01", 30, 100) // 30% tips
	u := achievements.NewUnlocker(mem, zerolog.Nop())
	ctx := context.Background()

	got, err := u.Run(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []achievements.ID{achievements.TipMaster, achievements.EliteServer, achievements.TipChampion}, got)

	again, err := u.Run(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, again)

	rows, err := mem.ListUnlocked(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestUnlocker_OneFailureDoesNotStopOthers(t *testing.T) {
	// GIVEN: Persisting elite_server fails
	// WHEN: Running a pass that qualifies for three tip tiers
	// THEN: The other two are stored and the error names the failed one

	mem := store.NewMemory()
	seedWorked(t, mem, "2024-01-01", 30, 100)
	flaky := &flakyUnlocks{Memory: mem, fail: map[string]bool{string(achievements.EliteServer): true}}
	u := achievements.NewUnlocker(flaky, zerolog.Nop())

	got, err := u.Run(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), string(achievements.EliteServer))
	assert.Equal(t, engine.KindStoreFailure, engine.KindOf(err))
	assert.Equal(t, []achievements.ID{achievements.TipMaster, achievements.TipChampion}, got)

	// next pass retries only the failed one
	flaky.fail = nil
	got, err = u.Run(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []achievements.ID{achievements.EliteServer}, got)
}

// racingUnlocks reports a conflict, as if another pass stored it first.
type racingUnlocks struct{ *store.Memory }

func (r racingUnlocks) Unlock(ctx context.Context, a engine.UserAchievement) error {
	_ = r.Memory.Unlock(ctx, a)
	return fmt.Errorf("insert: %w", engine.ErrConflict)
}

func TestUnlocker_ConflictIsNotAFailure(t *testing.T) {
	mem := store.NewMemory()
	seedWorked(t, mem, "2024-01-01", 20, 100)
	u := achievements.NewUnlocker(racingUnlocks{mem}, zerolog.Nop())

	got, err := u.Run(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnlocker_Progress(t *testing.T) {
	mem := store.NewMemory()
	seedWorked(t, mem, "2024-01-01", 20, 100)
	u := achievements.NewUnlocker(mem, zerolog.Nop())
	ctx := context.Background()

	_, err := u.Run(ctx, "user-1")
	require.NoError(t, err)

	progress, err := u.Progress(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, progress, 12)
	assert.Equal(t, achievements.TipMaster, progress[0].ID)
	assert.True(t, progress[0].Unlocked)
	assert.NotNil(t, progress[0].UnlockedAt)
	assert.True(t, progress[0].Current.Equal(engine.Dec(20)))
	assert.False(t, progress[1].Unlocked)
}
