/*
handlers_test.go - HTTP tests for the API handlers

Tests for:
- Caller check on every user route
- Weekly cap (429) and overlap (409) on scheduling
- Outcome logging, duplicate completion, ownership
- Stats with comparison, usage, profile, employers
*/
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// Wednesday; with the default Sunday week start the window is Mar 3 to Mar 9.
var fixedNow = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	h      *api.Handler
	router http.Handler
	mem    *store.Memory
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	mem := store.NewMemory()
	h := api.NewHandler(mem, zerolog.Nop())

	now := func() time.Time { return fixedNow }
	h.Now = now
	h.Shifts.Now = now
	h.Gate.Now = now
	h.Achievements.Now = now

	n := 0
	seq := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	h.NewID = seq
	h.Shifts.NewID = seq

	return &testAPI{h: h, router: api.NewRouter(h, api.RouterOptions{}), mem: mem}
}

func (a *testAPI) subscribe(t *testing.T, user engine.UserID, tier engine.Tier) {
	t.Helper()
	require.NoError(t, a.mem.SaveSubscription(context.Background(), engine.Subscription{
		UserID: user, Tier: tier, Status: engine.SubscriptionActive,
	}))
}

func (a *testAPI) do(t *testing.T, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(api.CallerHeader, caller)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) schedule(t *testing.T, user, date, start, end string) api.ShiftDTO {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/users/"+user+"/shifts", user, api.ShiftRequest{
		ShiftDate: date, StartTime: start, EndTime: end, HourlyRate: decimal.NewFromInt(15),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[api.ShiftDTO](t, rec)
}

func (a *testAPI) complete(t *testing.T, user, shiftID string, hours, tips, sales int64) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, "/api/users/"+user+"/shifts/"+shiftID+"/complete", user, api.CompleteShiftRequest{
		ActualHours: decimal.NewFromInt(hours),
		Tips:        decimal.NewFromInt(tips),
		Sales:       decimal.NewFromInt(sales),
	})
}

// =============================================================================
// CALLER CHECK
// =============================================================================

func TestRouter_CallerMustMatchPathUser(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/users/u1/shifts", "u2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/users/u1/shifts", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody[api.ErrorResponse](t, rec).Kind)

	rec = a.do(t, http.MethodGet, "/api/users/u1/shifts", "u1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =============================================================================
// SCHEDULING
// =============================================================================

func TestCreateShift_NoSubscription_Unrestricted(t *testing.T) {
	// GIVEN: A user without a subscription (tier none)
	a := newTestAPI(t)

	// WHEN: Scheduling and completing more shifts than the part-time cap
	var ids []string
	for _, date := range []string{"2024-03-03", "2024-03-04", "2024-03-05", "2024-03-06"} {
		ids = append(ids, a.schedule(t, "u1", date, "09:00", "17:00").ID)
	}
	for _, id := range ids {
		rec := a.complete(t, "u1", id, 8, 20, 100)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// THEN: Nothing is capped
	rec := a.do(t, http.MethodGet, "/api/users/u1/usage", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	usage := decodeBody[api.UsageDTO](t, rec)
	assert.Equal(t, "none", usage.Tier)
	assert.Nil(t, usage.ShiftsLimit)
	assert.True(t, usage.CanAddShift)
	assert.True(t, usage.CanAddEntry)
	assert.Equal(t, 4, usage.EntriesUsed)
}

func TestCreateShift_PartTimeWeeklyCap(t *testing.T) {
	// GIVEN: A part-time user with three shifts this week
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierPartTime)
	for _, d := range []string{"2024-03-04", "2024-03-05", "2024-03-06"} {
		a.schedule(t, "u1", d, "09:00", "17:00")
	}

	// WHEN: Scheduling a fourth
	rec := a.do(t, http.MethodPost, "/api/users/u1/shifts", "u1", api.ShiftRequest{
		ShiftDate: "2024-03-08", StartTime: "09:00", EndTime: "17:00",
	})

	// THEN: The cap blocks it
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, decodeBody[api.ErrorResponse](t, rec).Details, "3 of 3")
}

func TestCreateShift_Overlap(t *testing.T) {
	// GIVEN: A full-tier user with a 09:00-17:00 shift
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	first := a.schedule(t, "u1", "2024-03-07", "09:00", "17:00")

	// WHEN: Scheduling 16:00-20:00 the same day
	rec := a.do(t, http.MethodPost, "/api/users/u1/shifts", "u1", api.ShiftRequest{
		ShiftDate: "2024-03-07", StartTime: "16:00", EndTime: "20:00",
	})

	// THEN: 409 naming the existing shift
	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody[api.ErrorResponse](t, rec)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, first.ID, resp.Conflicts[0].ID)

	// AND: A touching shift is admitted
	touching := a.schedule(t, "u1", "2024-03-07", "17:00", "20:00")
	assert.Equal(t, "planned", touching.Status)
}

func TestCheckOverlap_DryRun(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	night := a.schedule(t, "u1", "2024-03-07", "22:00", "02:00")

	rec := a.do(t, http.MethodPost, "/api/users/u1/shifts/overlap", "u1", api.OverlapRequest{
		StartDate: "2024-03-08", StartTime: "01:00", EndTime: "05:00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.OverlapResponse](t, rec)
	assert.True(t, resp.Overlaps)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, night.ID, resp.Conflicts[0].ID)

	rec = a.do(t, http.MethodPost, "/api/users/u1/shifts/overlap", "u1", api.OverlapRequest{
		StartDate: "2024-03-08", StartTime: "01:00", EndTime: "05:00", ExcludeID: night.ID,
	})
	assert.False(t, decodeBody[api.OverlapResponse](t, rec).Overlaps)
}

func TestCheckOverlap_InvertedEndRejected(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)

	for _, req := range []api.OverlapRequest{
		{StartDate: "2024-03-08", StartTime: "09:00", EndDate: "2024-03-07", EndTime: "17:00"},
		{StartDate: "2024-03-08", StartTime: "17:00", EndDate: "2024-03-08", EndTime: "09:00"},
	} {
		rec := a.do(t, http.MethodPost, "/api/users/u1/shifts/overlap", "u1", req)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "end_date", decodeBody[api.ErrorResponse](t, rec).Field)
	}
}

func TestCreateShift_InvalidInput(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)

	rec := a.do(t, http.MethodPost, "/api/users/u1/shifts", "u1", api.ShiftRequest{
		ShiftDate: "03/07/2024", StartTime: "09:00", EndTime: "17:00",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "shift_date", decodeBody[api.ErrorResponse](t, rec).Field)

	req := httptest.NewRequest(http.MethodPost, "/api/users/u1/shifts", bytes.NewBufferString("{not json"))
	req.Header.Set(api.CallerHeader, "u1")
	raw := httptest.NewRecorder()
	a.router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestCreateShift_FallbackRate(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	a.h.DefaultHourlyRate = decimal.NewFromInt(11)

	rec := a.do(t, http.MethodPost, "/api/users/u1/shifts", "u1", api.ShiftRequest{
		ShiftDate: "2024-03-07", StartTime: "09:00", EndTime: "17:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	dto := decodeBody[api.ShiftDTO](t, rec)
	assert.True(t, dto.HourlyRate.Equal(decimal.NewFromInt(11)))
	// 8 planned hours at 11
	assert.True(t, dto.ExpectedEarnings.Equal(decimal.NewFromInt(88)), dto.ExpectedEarnings.String())
}

func TestUpdateAndDeleteShift(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	s := a.schedule(t, "u1", "2024-03-07", "09:00", "17:00")

	rec := a.do(t, http.MethodPut, "/api/users/u1/shifts/"+s.ID, "u1", api.ShiftRequest{
		ShiftDate: "2024-03-07", StartTime: "10:00", EndTime: "18:00", HourlyRate: decimal.NewFromInt(16),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "10:00", decodeBody[api.ShiftDTO](t, rec).StartTime)

	rec = a.do(t, http.MethodDelete, "/api/users/u1/shifts/"+s.ID, "u1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodDelete, "/api/users/u1/shifts/"+s.ID, "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// COMPLETION
// =============================================================================

func TestCompleteShift_LogsOutcomeOnce(t *testing.T) {
	// GIVEN: A planned shift
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	s := a.schedule(t, "u1", "2024-03-05", "09:00", "17:00")

	// WHEN: Logging the outcome
	rec := a.complete(t, "u1", s.ID, 8, 40, 200)

	// THEN: The shift reads completed with the snapshot stamped
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[api.CompleteShiftResponse](t, rec)
	assert.Equal(t, "completed", resp.Shift.Status)
	require.NotNil(t, resp.Shift.Entry)
	assert.True(t, resp.Shift.Entry.TipPercentage.Equal(decimal.NewFromInt(20)))
	// gross 120, total 160, net 160 - 36
	assert.True(t, resp.Shift.Entry.NetIncome.Equal(decimal.NewFromInt(124)))

	// AND: A second outcome for the same shift is a conflict
	rec = a.complete(t, "u1", s.ID, 1, 0, 0)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCompleteShift_Ownership(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	a.subscribe(t, "u2", engine.TierFull)
	s := a.schedule(t, "u1", "2024-03-05", "09:00", "17:00")

	rec := a.complete(t, "u2", s.ID, 8, 40, 200)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.complete(t, "u1", "missing", 8, 40, 200)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteShift_NegativeTips(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	s := a.schedule(t, "u1", "2024-03-05", "09:00", "17:00")

	rec := a.complete(t, "u1", s.ID, 8, -1, 0)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "tips", decodeBody[api.ErrorResponse](t, rec).Field)
}

func TestMarkMissed_Idempotent(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	s := a.schedule(t, "u1", "2024-03-04", "09:00", "17:00")

	for i := 0; i < 2; i++ {
		rec := a.do(t, http.MethodPost, "/api/users/u1/shifts/"+s.ID+"/missed", "u1", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := a.do(t, http.MethodGet, "/api/users/u1/shifts?from=2024-03-01&to=2024-03-31", "u1", nil)
	list := decodeBody[[]api.ShiftDTO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "missed", list[0].Status)
}

// =============================================================================
// DASHBOARD
// =============================================================================

func TestGetStats_WithComparison(t *testing.T) {
	// GIVEN: One worked shift in February and two in March
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	feb := a.schedule(t, "u1", "2024-02-20", "09:00", "17:00")
	m1 := a.schedule(t, "u1", "2024-03-04", "09:00", "17:00")
	m2 := a.schedule(t, "u1", "2024-03-05", "09:00", "17:00")
	for _, id := range []string{feb.ID, m1.ID, m2.ID} {
		require.Equal(t, http.StatusOK, a.complete(t, "u1", id, 8, 40, 200).Code)
	}

	// WHEN: Asking for March with comparison
	rec := a.do(t, http.MethodGet, "/api/users/u1/stats?from=2024-03-01&to=2024-03-31&compare=1", "u1", nil)

	// THEN: March doubles February
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[api.StatsResponse](t, rec)
	assert.Equal(t, 2, resp.Stats.WorkedShifts)
	assert.True(t, resp.Stats.TotalTips.Equal(decimal.NewFromInt(80)))
	require.NotNil(t, resp.Previous)
	assert.Equal(t, 1, resp.Previous.WorkedShifts)
	require.NotNil(t, resp.Changes)
	assert.True(t, resp.Changes.Earnings.Equal(decimal.NewFromInt(100)), resp.Changes.Earnings.String())
	assert.Contains(t, resp.ByEmployer, "Unknown Employer")
}

func TestGetStats_InvertedWindow(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/api/users/u1/stats?from=2024-03-31&to=2024-03-01", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUsage(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierPartTime)
	a.schedule(t, "u1", "2024-03-04", "09:00", "17:00")

	rec := a.do(t, http.MethodGet, "/api/users/u1/usage?today=2024-03-06", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	u := decodeBody[api.UsageDTO](t, rec)

	assert.Equal(t, "parttime", u.Tier)
	assert.Equal(t, "2024-03-03", u.Window.From)
	assert.Equal(t, 1, u.ShiftsUsed)
	require.NotNil(t, u.ShiftsLimit)
	assert.Equal(t, 3, *u.ShiftsLimit)
	assert.True(t, u.CanAddShift)

	// Next Sunday the window resets
	rec = a.do(t, http.MethodGet, "/api/users/u1/usage?today=2024-03-10", "u1", nil)
	assert.Equal(t, 0, decodeBody[api.UsageDTO](t, rec).ShiftsUsed)
}

// =============================================================================
// PROFILE AND EMPLOYERS
// =============================================================================

func TestPutProfile(t *testing.T) {
	a := newTestAPI(t)
	monday := 1

	rec := a.do(t, http.MethodPut, "/api/users/u1/profile", "u1", api.ProfileRequest{
		WeekStart: &monday,
		Tier:      "parttime",
		Targets:   api.TargetsDTO{TipsDaily: decimal.NewFromInt(100)},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decodeBody[api.ProfileDTO](t, rec)
	assert.Equal(t, 1, p.WeekStart)
	assert.Equal(t, "parttime", p.Tier)

	rec = a.do(t, http.MethodGet, "/api/users/u1/usage?today=2024-03-06", "u1", nil)
	assert.Equal(t, "2024-03-04", decodeBody[api.UsageDTO](t, rec).Window.From)

	bad := 9
	rec = a.do(t, http.MethodPut, "/api/users/u1/profile", "u1", api.ProfileRequest{WeekStart: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodPut, "/api/users/u1/profile", "u1", api.ProfileRequest{Tier: "platinum"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployers(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)

	rec := a.do(t, http.MethodPost, "/api/users/u1/employers", "u1", api.CreateEmployerRequest{
		Name: "Bistro", DefaultHourlyRate: decimal.NewFromInt(13),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	emp := decodeBody[api.EmployerDTO](t, rec)

	// Employer rate applies when the shift has none
	rec = a.do(t, http.MethodPost, "/api/users/u1/shifts", "u1", api.ShiftRequest{
		EmployerID: &emp.ID, ShiftDate: "2024-03-07", StartTime: "09:00", EndTime: "17:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	s := decodeBody[api.ShiftDTO](t, rec)
	assert.True(t, s.HourlyRate.Equal(decimal.NewFromInt(13)))
	assert.Equal(t, "Bistro", s.EmployerName)

	// Another user may not deactivate it
	rec = a.do(t, http.MethodDelete, "/api/users/u2/employers/"+emp.ID, "u2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, http.MethodDelete, "/api/users/u1/employers/"+emp.ID, "u1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/users/u1/employers", "u1", nil)
	assert.Empty(t, decodeBody[[]api.EmployerDTO](t, rec))
	rec = a.do(t, http.MethodGet, "/api/users/u1/employers?all=true", "u1", nil)
	assert.Len(t, decodeBody[[]api.EmployerDTO](t, rec), 1)

	// Inactive employers cannot take new shifts
	rec = a.do(t, http.MethodPost, "/api/users/u1/shifts", "u1", api.ShiftRequest{
		EmployerID: &emp.ID, ShiftDate: "2024-03-08", StartTime: "09:00", EndTime: "17:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

func TestAchievements_ListAndEvaluate(t *testing.T) {
	a := newTestAPI(t)
	a.subscribe(t, "u1", engine.TierFull)
	s := a.schedule(t, "u1", "2024-03-05", "09:00", "17:00")

	// Completion runs a pass itself: 25% tips unlocks the first two tip badges
	rec := a.complete(t, "u1", s.ID, 8, 50, 200)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"tip_master", "elite_server"}, decodeBody[api.CompleteShiftResponse](t, rec).Unlocked)

	rec = a.do(t, http.MethodPost, "/api/users/u1/achievements/evaluate", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[api.EvaluateResponse](t, rec).Unlocked)

	rec = a.do(t, http.MethodGet, "/api/users/u1/achievements", "u1", nil)
	list := decodeBody[[]api.AchievementDTO](t, rec)
	require.Len(t, list, 12)
	assert.True(t, list[0].Unlocked)
	assert.NotEmpty(t, list[0].UnlockedAt)
	assert.False(t, list[2].Unlocked)
}
