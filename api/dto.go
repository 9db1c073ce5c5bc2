/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's records from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY AND HOURS:
  Every amount is a decimal.Decimal. It encodes as a JSON string ("12.50")
  and decodes from either a string or a number.

VALIDATION:
  Parsing to engine types happens in the to*() helpers; business validation
  happens in the shifts package. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/achievements"
	"github.com/warp/shift-engine/earnings"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/quota"
)

// =============================================================================
// EMPLOYERS
// =============================================================================

type EmployerDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	DefaultHourlyRate decimal.Decimal `json:"default_hourly_rate"`
	Active            bool            `json:"active"`
	CreatedAt         string          `json:"created_at,omitempty"`
}

type CreateEmployerRequest struct {
	Name              string          `json:"name"`
	DefaultHourlyRate decimal.Decimal `json:"default_hourly_rate"`
}

func toEmployerDTO(e engine.Employer) EmployerDTO {
	dto := EmployerDTO{
		ID:                string(e.ID),
		Name:              e.Name,
		DefaultHourlyRate: e.DefaultHourlyRate,
		Active:            e.Active,
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftRequest is the body of schedule and edit calls.
type ShiftRequest struct {
	EmployerID        *string          `json:"employer_id,omitempty"`
	ShiftDate         string           `json:"shift_date"`
	StartTime         string           `json:"start_time"`
	EndTime           string           `json:"end_time"`
	HourlyRate        decimal.Decimal  `json:"hourly_rate"`
	LunchBreakMinutes int              `json:"lunch_break_minutes"`
	SalesTarget       *decimal.Decimal `json:"sales_target,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

func (req ShiftRequest) toShift() (engine.PlannedShift, error) {
	date, err := engine.ParseDate(req.ShiftDate)
	if err != nil {
		return engine.PlannedShift{}, &engine.FieldError{Field: "shift_date", Reason: "must be YYYY-MM-DD"}
	}
	start, err := engine.ParseClockTime(req.StartTime)
	if err != nil {
		return engine.PlannedShift{}, &engine.FieldError{Field: "start_time", Reason: "must be HH:MM"}
	}
	end, err := engine.ParseClockTime(req.EndTime)
	if err != nil {
		return engine.PlannedShift{}, &engine.FieldError{Field: "end_time", Reason: "must be HH:MM"}
	}

	s := engine.PlannedShift{
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		HourlyRate:        req.HourlyRate,
		LunchBreakMinutes: req.LunchBreakMinutes,
		SalesTarget:       req.SalesTarget,
		Notes:             req.Notes,
	}
	if req.EmployerID != nil && *req.EmployerID != "" {
		id := engine.EmployerID(*req.EmployerID)
		s.EmployerID = &id
	}
	return s, nil
}

type ShiftDTO struct {
	ID                string           `json:"id"`
	EmployerID        *string          `json:"employer_id,omitempty"`
	EmployerName      string           `json:"employer_name"`
	ShiftDate         string           `json:"shift_date"`
	StartTime         string           `json:"start_time"`
	EndTime           string           `json:"end_time"`
	HourlyRate        decimal.Decimal  `json:"hourly_rate"`
	LunchBreakMinutes int              `json:"lunch_break_minutes"`
	SalesTarget       *decimal.Decimal `json:"sales_target,omitempty"`
	ExpectedHours     decimal.Decimal  `json:"expected_hours"`
	ExpectedEarnings  decimal.Decimal  `json:"expected_earnings"`
	Status            string           `json:"status"`
	Notes             string           `json:"notes,omitempty"`
	Entry             *EntryDTO        `json:"entry,omitempty"`
}

func toShiftDTO(rs engine.ReconciledShift) ShiftDTO {
	s := rs.Shift
	dto := ShiftDTO{
		ID:                string(s.ID),
		EmployerName:      rs.EmployerName(),
		ShiftDate:         s.Date.String(),
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		HourlyRate:        s.HourlyRate,
		LunchBreakMinutes: s.LunchBreakMinutes,
		SalesTarget:       s.SalesTarget,
		ExpectedHours:     s.ExpectedHours(),
		ExpectedEarnings:  s.ExpectedEarnings().Round(2),
		Status:            string(rs.Status()),
		Notes:             s.Notes,
	}
	if s.EmployerID != nil {
		id := string(*s.EmployerID)
		dto.EmployerID = &id
	}
	if rs.Outcome != nil {
		e := toEntryDTO(*rs.Outcome)
		dto.Entry = &e
	}
	return dto
}

func toShiftDTOs(shifts []engine.ReconciledShift) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, rs := range shifts {
		dtos[i] = toShiftDTO(rs)
	}
	return dtos
}

// OverlapRequest asks whether an interval would collide, without writing.
type OverlapRequest struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date,omitempty"`
	EndTime   string `json:"end_time"`
	ExcludeID string `json:"exclude_id,omitempty"`
}

type OverlapResponse struct {
	Overlaps  bool       `json:"overlaps"`
	Conflicts []ShiftDTO `json:"conflicts"`
}

// =============================================================================
// ENTRIES
// =============================================================================

// CompleteShiftRequest is the logged outcome for a planned shift.
type CompleteShiftRequest struct {
	ActualStart string          `json:"actual_start,omitempty"`
	ActualEnd   string          `json:"actual_end,omitempty"`
	ActualHours decimal.Decimal `json:"actual_hours"`
	Tips        decimal.Decimal `json:"tips"`
	Sales       decimal.Decimal `json:"sales"`
	Other       decimal.Decimal `json:"other"`
	CashOut     decimal.Decimal `json:"cash_out"`
	Notes       string          `json:"notes,omitempty"`
}

func (req CompleteShiftRequest) toOutcome() (engine.LoggedOutcome, error) {
	o := engine.LoggedOutcome{
		ActualHours: req.ActualHours,
		Tips:        req.Tips,
		Sales:       req.Sales,
		OtherIncome: req.Other,
		CashOut:     req.CashOut,
		Notes:       req.Notes,
	}
	if req.ActualStart != "" {
		c, err := engine.ParseClockTime(req.ActualStart)
		if err != nil {
			return o, &engine.FieldError{Field: "actual_start", Reason: "must be HH:MM"}
		}
		o.ActualStart = &c
	}
	if req.ActualEnd != "" {
		c, err := engine.ParseClockTime(req.ActualEnd)
		if err != nil {
			return o, &engine.FieldError{Field: "actual_end", Reason: "must be HH:MM"}
		}
		o.ActualEnd = &c
	}
	return o, nil
}

type EntryDTO struct {
	ID                  string          `json:"id"`
	ActualStart         string          `json:"actual_start,omitempty"`
	ActualEnd           string          `json:"actual_end,omitempty"`
	ActualHours         decimal.Decimal `json:"actual_hours"`
	Tips                decimal.Decimal `json:"tips"`
	Sales               decimal.Decimal `json:"sales"`
	Other               decimal.Decimal `json:"other"`
	CashOut             decimal.Decimal `json:"cash_out"`
	TipPercentage       decimal.Decimal `json:"tip_percentage"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	DeductionPercent    decimal.Decimal `json:"deduction_percent"`
	GrossIncome         decimal.Decimal `json:"gross_income"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	NetIncome           decimal.Decimal `json:"net_income"`
	EffectiveHourlyRate decimal.Decimal `json:"effective_hourly_rate"`
	Notes               string          `json:"notes,omitempty"`
}

func toEntryDTO(o engine.LoggedOutcome) EntryDTO {
	dto := EntryDTO{
		ID:                  string(o.ID),
		ActualHours:         o.ActualHours,
		Tips:                o.Tips,
		Sales:               o.Sales,
		Other:               o.OtherIncome,
		CashOut:             o.CashOut,
		TipPercentage:       o.TipPercentage().Round(2),
		HourlyRate:          o.HourlyRate,
		DeductionPercent:    o.DeductionPercent,
		GrossIncome:         o.GrossIncome,
		TotalIncome:         o.TotalIncome,
		NetIncome:           o.NetIncome,
		EffectiveHourlyRate: o.EffectiveHourlyRate.Round(2),
		Notes:               o.Notes,
	}
	if o.ActualStart != nil {
		dto.ActualStart = o.ActualStart.String()
	}
	if o.ActualEnd != nil {
		dto.ActualEnd = o.ActualEnd.String()
	}
	return dto
}

// CompleteShiftResponse carries the completed shift and any achievements
// the completion unlocked.
type CompleteShiftResponse struct {
	Shift    ShiftDTO `json:"shift"`
	Unlocked []string `json:"unlocked"`
}

// =============================================================================
// STATS
// =============================================================================

type WindowDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func toWindowDTO(w engine.DateRange) WindowDTO {
	return WindowDTO{From: w.Start.String(), To: w.End.String()}
}

type StatsDTO struct {
	TotalShifts          int             `json:"total_shifts"`
	WorkedShifts         int             `json:"worked_shifts"`
	MissedShifts         int             `json:"missed_shifts"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	TotalTips            decimal.Decimal `json:"total_tips"`
	TotalSales           decimal.Decimal `json:"total_sales"`
	TotalWages           decimal.Decimal `json:"total_wages"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	AverageTipPercentage decimal.Decimal `json:"average_tip_percentage"`
	AverageHourlyRate    decimal.Decimal `json:"average_hourly_rate"`
	EffectiveHourlyRate  decimal.Decimal `json:"effective_hourly_rate"`
}

// toStatsDTO rounds the averages for display; totals are exact.
func toStatsDTO(s earnings.DashboardStats) StatsDTO {
	return StatsDTO{
		TotalShifts:          s.TotalShifts,
		WorkedShifts:         s.WorkedShifts,
		MissedShifts:         s.MissedShifts,
		TotalHours:           s.TotalHours,
		TotalTips:            s.TotalTips,
		TotalSales:           s.TotalSales,
		TotalWages:           s.TotalWages,
		TotalEarnings:        s.TotalEarnings,
		AverageTipPercentage: s.AverageTipPercentage.Round(2),
		AverageHourlyRate:    s.AverageHourlyRate.Round(2),
		EffectiveHourlyRate:  s.EffectiveHourlyRate.Round(2),
	}
}

type ChangesDTO struct {
	Earnings decimal.Decimal `json:"earnings"`
	Wages    decimal.Decimal `json:"wages"`
	Tips     decimal.Decimal `json:"tips"`
	Hours    decimal.Decimal `json:"hours"`
	Sales    decimal.Decimal `json:"sales"`
}

type StatsResponse struct {
	Window     WindowDTO           `json:"window"`
	Stats      StatsDTO            `json:"stats"`
	ByEmployer map[string]StatsDTO `json:"by_employer"`
	Previous   *StatsDTO           `json:"previous,omitempty"`
	Changes    *ChangesDTO         `json:"changes,omitempty"`
}

func toChangesDTO(c earnings.Changes) *ChangesDTO {
	return &ChangesDTO{
		Earnings: c.Earnings.Round(1),
		Wages:    c.Wages.Round(1),
		Tips:     c.Tips.Round(1),
		Hours:    c.Hours.Round(1),
		Sales:    c.Sales.Round(1),
	}
}

// =============================================================================
// USAGE
// =============================================================================

type UsageDTO struct {
	Tier         string    `json:"tier"`
	Window       WindowDTO `json:"window"`
	ShiftsUsed   int       `json:"shifts_used"`
	EntriesUsed  int       `json:"entries_used"`
	ShiftsLimit  *int      `json:"shifts_limit"`
	EntriesLimit *int      `json:"entries_limit"`
	CanAddShift  bool      `json:"can_add_shift"`
	CanAddEntry  bool      `json:"can_add_entry"`
}

func toUsageDTO(u quota.WeeklyUsage) UsageDTO {
	dto := UsageDTO{
		Tier:        string(u.Tier),
		Window:      toWindowDTO(u.Window),
		ShiftsUsed:  u.ShiftsUsed,
		EntriesUsed: u.EntriesUsed,
		CanAddShift: u.CanAddShift,
		CanAddEntry: u.CanAddEntry,
	}
	if u.Limits != nil {
		shifts, entries := u.Limits.Shifts, u.Limits.Entries
		dto.ShiftsLimit = &shifts
		dto.EntriesLimit = &entries
	}
	return dto
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

type AchievementDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Badge       string          `json:"badge"`
	Requirement decimal.Decimal `json:"requirement"`
	Current     decimal.Decimal `json:"current"`
	Unlocked    bool            `json:"unlocked"`
	UnlockedAt  string          `json:"unlocked_at,omitempty"`
}

func toAchievementDTO(p achievements.Progress) AchievementDTO {
	dto := AchievementDTO{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Badge:       string(p.Badge),
		Requirement: p.Requirement,
		Current:     p.Current.Round(2),
		Unlocked:    p.Unlocked,
	}
	if p.UnlockedAt != nil {
		dto.UnlockedAt = p.UnlockedAt.Format(time.RFC3339)
	}
	return dto
}

type EvaluateResponse struct {
	Unlocked []string `json:"unlocked"`
}

// =============================================================================
// PROFILE
// =============================================================================

type TargetsDTO struct {
	TipsDaily    decimal.Decimal `json:"tips_daily"`
	TipsWeekly   decimal.Decimal `json:"tips_weekly"`
	TipsMonthly  decimal.Decimal `json:"tips_monthly"`
	SalesDaily   decimal.Decimal `json:"sales_daily"`
	SalesWeekly  decimal.Decimal `json:"sales_weekly"`
	SalesMonthly decimal.Decimal `json:"sales_monthly"`
	HoursDaily   decimal.Decimal `json:"hours_daily"`
	HoursWeekly  decimal.Decimal `json:"hours_weekly"`
	HoursMonthly decimal.Decimal `json:"hours_monthly"`
}

func (t TargetsDTO) toTargets() engine.Targets {
	return engine.Targets(t)
}

// ProfileRequest replaces the user's settings. Tier and subscription fields
// stand in for the billing provider's webhook.
type ProfileRequest struct {
	WeekStart          *int             `json:"week_start,omitempty"`
	DefaultHourlyRate  decimal.Decimal  `json:"default_hourly_rate"`
	DeductionPercent   *decimal.Decimal `json:"deduction_percent,omitempty"`
	Targets            TargetsDTO       `json:"targets"`
	Tier               string           `json:"tier,omitempty"`
	SubscriptionStatus string           `json:"subscription_status,omitempty"`
	ExpiresAt          *time.Time       `json:"subscription_expires_at,omitempty"`
}

type ProfileDTO struct {
	UserID            string          `json:"user_id"`
	WeekStart         int             `json:"week_start"`
	DefaultHourlyRate decimal.Decimal `json:"default_hourly_rate"`
	DeductionPercent  decimal.Decimal `json:"deduction_percent"`
	Targets           TargetsDTO      `json:"targets"`
	Tier              string          `json:"tier"`
}

func toProfileDTO(p engine.Profile, tier quota.Tier) ProfileDTO {
	return ProfileDTO{
		UserID:            string(p.UserID),
		WeekStart:         int(p.WeekStart),
		DefaultHourlyRate: p.DefaultHourlyRate,
		DeductionPercent:  p.DeductionPercent,
		Targets:           TargetsDTO(p.Targets),
		Tier:              string(tier),
	}
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

type LoadScenarioResponse struct {
	ScenarioID string   `json:"scenario_id"`
	Unlocked   []string `json:"unlocked"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string     `json:"error"`
	Kind      string     `json:"kind,omitempty"`
	Details   string     `json:"details,omitempty"`
	Field     string     `json:"field,omitempty"`
	Conflicts []ShiftDTO `json:"conflicts,omitempty"`
}
