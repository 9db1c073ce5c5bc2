package shifts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/shifts"
)

func outcome(shiftID string, hours, tips, sales float64) engine.LoggedOutcome {
	return engine.LoggedOutcome{
		ID:          engine.EntryID("e-" + shiftID),
		ShiftID:     engine.ShiftID(shiftID),
		UserID:      "user-1",
		ActualHours: engine.Dec(hours),
		Tips:        engine.Dec(tips),
		Sales:       engine.Dec(sales),
	}
}

func TestReconcile_OnePerPlannedShift(t *testing.T) {
	emp := engine.EmployerID("emp-1")
	a := planned("a", "2024-03-05", "09:00", "17:00")
	a.EmployerID = &emp
	b := planned("b", "2024-03-04", "18:00", "23:00")

	got := shifts.Reconcile(
		[]engine.PlannedShift{a, b},
		[]engine.LoggedOutcome{outcome("a", 8, 40, 200)},
		[]engine.Employer{{ID: emp, Name: "Bistro"}},
		nil,
	)

	require.Len(t, got, 2)
	// sorted by date
	assert.Equal(t, engine.ShiftID("b"), got[0].Shift.ID)
	assert.Nil(t, got[0].Outcome)
	assert.Equal(t, engine.StatusPlanned, got[0].Status())

	assert.Equal(t, engine.ShiftID("a"), got[1].Shift.ID)
	require.NotNil(t, got[1].Outcome)
	assert.Equal(t, engine.StatusCompleted, got[1].Status())
	assert.Equal(t, "Bistro", got[1].EmployerName())
}

func TestReconcile_OrphanOutcomeDropped(t *testing.T) {
	got := shifts.Reconcile(
		[]engine.PlannedShift{planned("a", "2024-03-04", "09:00", "17:00")},
		[]engine.LoggedOutcome{outcome("gone", 5, 10, 50)},
		nil, nil,
	)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Outcome)

	orphans := shifts.Orphans(
		[]engine.PlannedShift{planned("a", "2024-03-04", "09:00", "17:00")},
		[]engine.LoggedOutcome{outcome("gone", 5, 10, 50), outcome("a", 1, 1, 1)},
	)
	require.Len(t, orphans, 1)
	assert.Equal(t, engine.ShiftID("gone"), orphans[0].ShiftID)
}

func TestReconcile_UnknownEmployer(t *testing.T) {
	emp := engine.EmployerID("deleted")
	a := planned("a", "2024-03-04", "09:00", "17:00")
	a.EmployerID = &emp

	got := shifts.Reconcile([]engine.PlannedShift{a}, nil, nil, nil)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Employer)
	assert.Equal(t, "Unknown Employer", got[0].EmployerName())
}

func TestReconcile_DuplicateOutcomes_FirstWins(t *testing.T) {
	first := outcome("a", 8, 40, 200)
	second := outcome("a", 2, 5, 10)

	got := shifts.Reconcile(
		[]engine.PlannedShift{planned("a", "2024-03-04", "09:00", "17:00")},
		[]engine.LoggedOutcome{first, second},
		nil, nil,
	)
	require.Len(t, got, 1)
	assert.True(t, got[0].Outcome.Tips.Equal(engine.Dec(40)))
}

func TestReconcile_StaleStatusOverridden(t *testing.T) {
	// GIVEN: A shift still stored as missed, but with an outcome logged
	// THEN: The derived status is completed
	a := planned("a", "2024-03-04", "09:00", "17:00")
	a.Status = engine.StatusMissed

	got := shifts.Reconcile([]engine.PlannedShift{a}, []engine.LoggedOutcome{outcome("a", 8, 0, 0)}, nil, nil)
	assert.Equal(t, engine.StatusCompleted, got[0].Status())
}

func TestReconcile_Window(t *testing.T) {
	w := engine.DateRange{Start: engine.MustParseDate("2024-03-04"), End: engine.MustParseDate("2024-03-10")}
	got := shifts.Reconcile([]engine.PlannedShift{
		planned("in", "2024-03-10", "09:00", "17:00"),
		planned("out", "2024-03-11", "09:00", "17:00"),
	}, nil, nil, &w)
	require.Len(t, got, 1)
	assert.Equal(t, engine.ShiftID("in"), got[0].Shift.ID)
}

func TestReconcile_Idempotent(t *testing.T) {
	plans := []engine.PlannedShift{
		planned("a", "2024-03-04", "09:00", "17:00"),
		planned("b", "2024-03-04", "18:00", "22:00"),
	}
	outcomes := []engine.LoggedOutcome{outcome("a", 8, 40, 200)}

	first := shifts.Reconcile(plans, outcomes, nil, nil)
	second := shifts.Reconcile(plans, outcomes, nil, nil)
	assert.Equal(t, first, second)

	// inputs untouched
	assert.Equal(t, engine.ShiftID("a"), plans[0].ID)
	assert.Len(t, outcomes, 1)
}

func TestFilterStatus(t *testing.T) {
	missed := planned("m", "2024-03-03", "09:00", "17:00")
	missed.Status = engine.StatusMissed

	all := shifts.Reconcile(
		[]engine.PlannedShift{planned("a", "2024-03-04", "09:00", "17:00"), planned("b", "2024-03-05", "09:00", "17:00"), missed},
		[]engine.LoggedOutcome{outcome("a", 8, 0, 0)},
		nil, nil,
	)

	assert.Len(t, shifts.FilterStatus(all, engine.StatusCompleted), 1)
	assert.Len(t, shifts.FilterStatus(all, engine.StatusPlanned, engine.StatusMissed), 2)
}
