/*
handlers.go - HTTP API handlers for the shift engine

PURPOSE:
  Exposes shift planning, outcome logging, dashboard stats, weekly usage
  and achievements over REST. Handles HTTP request/response and JSON, and
  delegates every decision to the engine packages.

ENDPOINTS (all under /api/users/{userID}):
  Employers:
    GET    /employers?all=true       List employers (inactive with all=true)
    POST   /employers                Create employer
    DELETE /employers/{id}           Deactivate employer

  Shifts:
    GET    /shifts?from=&to=         Reconciled shifts in window
    POST   /shifts                   Schedule (weekly cap + overlap check)
    POST   /shifts/overlap           Dry-run overlap detection
    PUT    /shifts/{id}              Edit
    DELETE /shifts/{id}              Delete (outcome cascades)
    POST   /shifts/{id}/complete     Log outcome and complete
    POST   /shifts/{id}/missed       Mark missed

  Dashboard:
    GET    /stats?from=&to=&compare=1
    GET    /usage?today=

  Achievements:
    GET    /achievements             Catalogue with progress
    POST   /achievements/evaluate    Unlock everything that qualifies

  Profile:
    GET    /profile
    PUT    /profile

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:        Persistence port (sqlite in production, memory in tests)
  - Shifts:       Lifecycle service (admission, completion, missed)
  - Gate:         Weekly usage for the subscription caps
  - Achievements: Evaluation and progress

ERROR HANDLING:
  Errors are classified with engine.KindOf and returned as JSON:
  - 400: invalid_input
  - 403: unauthorized (caller is not the path user or does not own the record)
  - 404: not_found
  - 409: conflict (overlap, second outcome for a shift)
  - 429: limit_reached (weekly cap for the user's tier)
  - 500: store_failure

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/achievements"
	"github.com/warp/shift-engine/earnings"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/quota"
	"github.com/warp/shift-engine/shifts"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        engine.Store
	Shifts       *shifts.Service
	Gate         *quota.Gate
	Achievements *achievements.Unlocker
	Logger       zerolog.Logger

	// Location defines "today" for usage windows and default stats windows.
	Location *time.Location

	// DefaultHourlyRate applies to a shift with neither a rate nor an
	// employer, when the user's profile has no default either.
	DefaultHourlyRate decimal.Decimal

	Now   func() time.Time
	NewID func() string
}

// NewHandler wires the engine services over one store.
func NewHandler(store engine.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		Store:             store,
		Shifts:            shifts.NewService(store, logger),
		Gate:              quota.NewGate(store),
		Achievements:      achievements.NewUnlocker(store, logger),
		Logger:            logger.With().Str("component", "api").Logger(),
		Location:          time.UTC,
		DefaultHourlyRate: decimal.NewFromInt(15),
		Now:               time.Now,
		NewID:             uuid.NewString,
	}
}

func (h *Handler) today() engine.Date {
	return engine.DateOf(h.Now().In(h.Location))
}

func userIDParam(r *http.Request) engine.UserID {
	return engine.UserID(chi.URLParam(r, "userID"))
}

// =============================================================================
// EMPLOYER HANDLERS
// =============================================================================

// ListEmployers returns active employers, or all of them with ?all=true.
func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"
	employers, err := h.Store.ListEmployers(r.Context(), userIDParam(r), all)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	dtos := make([]EmployerDTO, len(employers))
	for i, e := range employers {
		dtos[i] = toEmployerDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployer creates a new active employer.
func (h *Handler) CreateEmployer(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if req.Name == "" {
		h.writeDomainError(w, r, &engine.FieldError{Field: "name", Reason: "required"})
		return
	}
	if req.DefaultHourlyRate.IsNegative() {
		h.writeDomainError(w, r, &engine.FieldError{Field: "default_hourly_rate", Reason: "must be non-negative"})
		return
	}

	emp := engine.Employer{
		ID:                engine.EmployerID(h.NewID()),
		UserID:            userIDParam(r),
		Name:              req.Name,
		DefaultHourlyRate: req.DefaultHourlyRate,
		Active:            true,
		CreatedAt:         h.Now().UTC(),
	}
	if err := h.Store.CreateEmployer(r.Context(), emp); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployerDTO(emp))
}

// DeactivateEmployer soft-deletes an employer. Shifts keep referencing it.
func (h *Handler) DeactivateEmployer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := engine.EmployerID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployer(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if emp.UserID != userIDParam(r) {
		h.writeDomainError(w, r, fmt.Errorf("employer %s: %w", id, engine.ErrUnauthorized))
		return
	}
	if err := h.Store.DeactivateEmployer(ctx, id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns reconciled shifts in ?from=&to=, defaulting to the
// current month.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	window, err := h.parseWindow(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	reconciled, err := h.Shifts.ListReconciled(r.Context(), userIDParam(r), &window)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(reconciled))
}

// CreateShift schedules a shift. The weekly cap is checked first and
// answers 429; overlap answers 409 with the conflicting shifts.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDParam(r)

	var req ShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	shift, err := req.toShift()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	usage, err := h.Gate.Usage(ctx, userID, h.today())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := usage.ShiftError(); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if shift.HourlyRate.IsZero() && shift.EmployerID == nil {
		shift.HourlyRate = h.fallbackRate(ctx, userID)
	}

	created, err := h.Shifts.ScheduleShift(ctx, userID, shift)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(h.withEmployer(ctx, engine.ReconciledShift{Shift: created})))
}

// CheckOverlap reports which shifts an interval would collide with.
func (h *Handler) CheckOverlap(w http.ResponseWriter, r *http.Request) {
	var req OverlapRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	c, err := req.toCandidate()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	conflicts, err := h.Shifts.CheckOverlap(r.Context(), userIDParam(r), c, engine.ShiftID(req.ExcludeID))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := OverlapResponse{Overlaps: len(conflicts) > 0, Conflicts: make([]ShiftDTO, len(conflicts))}
	for i, s := range conflicts {
		resp.Conflicts[i] = toShiftDTO(engine.ReconciledShift{Shift: s})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req OverlapRequest) toCandidate() (shifts.Candidate, error) {
	var c shifts.Candidate
	var err error
	if c.StartDate, err = engine.ParseDate(req.StartDate); err != nil {
		return c, &engine.FieldError{Field: "start_date", Reason: "must be YYYY-MM-DD"}
	}
	if c.StartTime, err = engine.ParseClockTime(req.StartTime); err != nil {
		return c, &engine.FieldError{Field: "start_time", Reason: "must be HH:MM"}
	}
	if c.EndTime, err = engine.ParseClockTime(req.EndTime); err != nil {
		return c, &engine.FieldError{Field: "end_time", Reason: "must be HH:MM"}
	}
	if req.EndDate != "" {
		end, err := engine.ParseDate(req.EndDate)
		if err != nil {
			return c, &engine.FieldError{Field: "end_date", Reason: "must be YYYY-MM-DD"}
		}
		c.EndDate = &end
	}
	return c, c.Validate()
}

// UpdateShift edits a planned shift. Status and outcome are untouched.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	shift, err := req.toShift()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	shift.ID = engine.ShiftID(chi.URLParam(r, "id"))

	updated, err := h.Shifts.UpdateShift(ctx, userIDParam(r), shift)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(h.withEmployer(ctx, engine.ReconciledShift{Shift: updated})))
}

// DeleteShift removes a shift and its outcome.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Shifts.DeleteShift(r.Context(), userIDParam(r), engine.ShiftID(chi.URLParam(r, "id"))); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteShift logs the outcome of a shift, then runs an achievement pass.
// An achievement failure does not fail the request; the next evaluation
// picks up whatever was missed.
func (h *Handler) CompleteShift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDParam(r)

	var req CompleteShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	outcome, err := req.toOutcome()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	usage, err := h.Gate.Usage(ctx, userID, h.today())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := usage.EntryError(); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	completed, err := h.Shifts.CompleteShift(ctx, userID, engine.ShiftID(chi.URLParam(r, "id")), outcome)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	resp := CompleteShiftResponse{Shift: toShiftDTO(completed), Unlocked: []string{}}
	unlocked, err := h.Achievements.Run(ctx, userID)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("achievement pass after completion failed")
	}
	for _, id := range unlocked {
		resp.Unlocked = append(resp.Unlocked, string(id))
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarkMissed flags a shift as missed. Repeating the call is a no-op.
func (h *Handler) MarkMissed(w http.ResponseWriter, r *http.Request) {
	if err := h.Shifts.MarkMissed(r.Context(), userIDParam(r), engine.ShiftID(chi.URLParam(r, "id"))); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fallbackRate is the profile's default rate, else the server default.
func (h *Handler) fallbackRate(ctx context.Context, userID engine.UserID) decimal.Decimal {
	p, err := h.Store.GetProfile(ctx, userID)
	if err == nil && p.DefaultHourlyRate.IsPositive() {
		return p.DefaultHourlyRate
	}
	return h.DefaultHourlyRate
}

func (h *Handler) withEmployer(ctx context.Context, rs engine.ReconciledShift) engine.ReconciledShift {
	if rs.Shift.EmployerID == nil {
		return rs
	}
	if emp, err := h.Store.GetEmployer(ctx, *rs.Shift.EmployerID); err == nil {
		rs.Employer = &emp
	}
	return rs
}

// =============================================================================
// DASHBOARD HANDLERS
// =============================================================================

// GetStats aggregates the window. With ?compare=1 the equal-length window
// before it is aggregated too and the percentage changes are returned.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDParam(r)

	window, err := h.parseWindow(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	current, err := h.Shifts.ListReconciled(ctx, userID, &window)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	stats := earnings.ComputeStats(current)
	resp := StatsResponse{
		Window:     toWindowDTO(window),
		Stats:      toStatsDTO(stats),
		ByEmployer: make(map[string]StatsDTO),
	}
	for name, s := range earnings.ByEmployer(current) {
		resp.ByEmployer[name] = toStatsDTO(s)
	}

	if q := r.URL.Query().Get("compare"); q == "1" || q == "true" {
		prevWindow := earnings.PreviousWindow(window)
		previous, err := h.Shifts.ListReconciled(ctx, userID, &prevWindow)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		prevStats := earnings.ComputeStats(previous)
		prevDTO := toStatsDTO(prevStats)
		resp.Previous = &prevDTO
		resp.Changes = toChangesDTO(earnings.Compare(stats, prevStats))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUsage returns the weekly usage for ?today= (default: today).
func (h *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	if q := r.URL.Query().Get("today"); q != "" {
		d, err := engine.ParseDate(q)
		if err != nil {
			h.writeDomainError(w, r, &engine.FieldError{Field: "today", Reason: "must be YYYY-MM-DD"})
			return
		}
		today = d
	}

	usage, err := h.Gate.Usage(r.Context(), userIDParam(r), today)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUsageDTO(usage))
}

// parseWindow reads ?from=&to=. Missing bounds default to the current
// month's first and last day.
func (h *Handler) parseWindow(r *http.Request) (engine.DateRange, error) {
	today := h.today()
	window := engine.DateRange{Start: engine.StartOfMonth(today), End: engine.EndOfMonth(today)}

	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		d, err := engine.ParseDate(s)
		if err != nil {
			return window, &engine.FieldError{Field: "from", Reason: "must be YYYY-MM-DD"}
		}
		window.Start = d
	}
	if s := q.Get("to"); s != "" {
		d, err := engine.ParseDate(s)
		if err != nil {
			return window, &engine.FieldError{Field: "to", Reason: "must be YYYY-MM-DD"}
		}
		window.End = d
	}
	return window, window.Validate()
}

// =============================================================================
// ACHIEVEMENT HANDLERS
// =============================================================================

// ListAchievements returns the catalogue with the user's progress.
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	progress, err := h.Achievements.Progress(r.Context(), userIDParam(r))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	dtos := make([]AchievementDTO, len(progress))
	for i, p := range progress {
		dtos[i] = toAchievementDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// EvaluateAchievements runs one unlock pass and returns the new ids.
func (h *Handler) EvaluateAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.Achievements.Run(r.Context(), userIDParam(r))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := EvaluateResponse{Unlocked: make([]string, len(unlocked))}
	for i, id := range unlocked {
		resp.Unlocked[i] = string(id)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// GetProfile returns saved settings, or the defaults for a new user.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDParam(r)

	p, err := h.Store.GetProfile(ctx, userID)
	switch {
	case engine.IsNotFound(err):
		p = engine.Profile{UserID: userID, WeekStart: time.Sunday, DefaultHourlyRate: h.DefaultHourlyRate, DeductionPercent: shifts.DefaultDeductionPercent}
	case err != nil:
		h.writeDomainError(w, r, err)
		return
	}
	tier, err := h.tier(ctx, userID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(p, tier))
}

// PutProfile replaces the profile and, when tier is given, the subscription.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDParam(r)

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	p, err := req.toProfile(userID, h.DefaultHourlyRate)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	var sub *engine.Subscription
	if req.Tier != "" {
		s, err := req.toSubscription(userID)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		sub = &s
	}

	if err := h.Store.SaveProfile(ctx, p); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if sub != nil {
		if err := h.Store.SaveSubscription(ctx, *sub); err != nil {
			h.writeDomainError(w, r, err)
			return
		}
	}

	tier, err := h.tier(ctx, userID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(p, tier))
}

func (h *Handler) tier(ctx context.Context, userID engine.UserID) (quota.Tier, error) {
	sub, err := h.Store.GetSubscription(ctx, userID)
	switch {
	case engine.IsNotFound(err):
		return quota.TierNone, nil
	case err != nil:
		return "", err
	}
	return quota.ResolveTier(sub, h.Now()), nil
}

func (req ProfileRequest) toProfile(userID engine.UserID, defaultRate decimal.Decimal) (engine.Profile, error) {
	p := engine.Profile{
		UserID:            userID,
		WeekStart:         time.Sunday,
		DefaultHourlyRate: req.DefaultHourlyRate,
		DeductionPercent:  shifts.DefaultDeductionPercent,
		Targets:           req.Targets.toTargets(),
	}
	if req.WeekStart != nil {
		if *req.WeekStart < 0 || *req.WeekStart > 6 {
			return p, &engine.FieldError{Field: "week_start", Reason: "must be 0 (Sunday) to 6 (Saturday)"}
		}
		p.WeekStart = time.Weekday(*req.WeekStart)
	}
	if p.DefaultHourlyRate.IsNegative() {
		return p, &engine.FieldError{Field: "default_hourly_rate", Reason: "must be non-negative"}
	}
	if p.DefaultHourlyRate.IsZero() {
		p.DefaultHourlyRate = defaultRate
	}
	if req.DeductionPercent != nil {
		d := *req.DeductionPercent
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return p, &engine.FieldError{Field: "deduction_percent", Reason: "must be between 0 and 100"}
		}
		p.DeductionPercent = d
	}
	return p, nil
}

func (req ProfileRequest) toSubscription(userID engine.UserID) (engine.Subscription, error) {
	sub := engine.Subscription{
		UserID:    userID,
		Tier:      engine.Tier(req.Tier),
		Status:    engine.SubscriptionActive,
		ExpiresAt: req.ExpiresAt,
	}
	switch sub.Tier {
	case quota.TierNone, quota.TierPartTime, quota.TierFull:
	default:
		return sub, &engine.FieldError{Field: "tier", Reason: "must be none, parttime or full"}
	}
	if req.SubscriptionStatus != "" {
		sub.Status = engine.SubscriptionStatus(req.SubscriptionStatus)
	}
	switch sub.Status {
	case engine.SubscriptionActive, engine.SubscriptionExpired, engine.SubscriptionCancelled:
	default:
		return sub, &engine.FieldError{Field: "subscription_status", Reason: "must be active, expired or cancelled"}
	}
	return sub, nil
}

// =============================================================================
// HEALTH
// =============================================================================

type pinger interface {
	Ping(ctx context.Context) error
}

// Health answers 200 when the store is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.Store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Store unavailable", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the error's kind to a status code. Store failures
// are logged with the request's logger; client errors are not.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := engine.KindOf(err)
	status, message := statusFor(kind)
	resp := ErrorResponse{Error: message, Kind: string(kind), Details: err.Error()}

	var fe *engine.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
	}
	var oe *engine.OverlapError
	if errors.As(err, &oe) {
		sorted := append([]engine.PlannedShift(nil), oe.Conflicts...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
		for _, s := range sorted {
			resp.Conflicts = append(resp.Conflicts, toShiftDTO(engine.ReconciledShift{Shift: s}))
		}
	}

	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, resp)
}

func statusFor(kind engine.Kind) (int, string) {
	switch kind {
	case engine.KindNotFound:
		return http.StatusNotFound, "Not found"
	case engine.KindConflict:
		return http.StatusConflict, "Conflict"
	case engine.KindUnauthorized:
		return http.StatusForbidden, "Forbidden"
	case engine.KindInvalidInput:
		return http.StatusBadRequest, "Invalid input"
	case engine.KindLimitReached:
		return http.StatusTooManyRequests, "Weekly limit reached"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: request body: %v", engine.ErrInvalidInput, err)
	}
	return nil
}
