/*
Package engine provides the core types of the shift reconciliation engine.

PURPOSE:
  Workers plan shifts, then log what actually happened. This package holds
  the records on both sides of that split, the derived view that joins
  them, and the ports an external persistence layer implements. It never
  performs I/O itself.

KEY CONCEPTS IN THIS FILE (types.go):
  - PlannedShift:    A scheduled interval with a planned hourly rate
  - LoggedOutcome:   What actually happened (hours, tips, sales, ...)
  - Employer:        Soft-deletable employer with a default rate
  - ReconciledShift: Derived join of the three, never persisted

DESIGN PRINCIPLES:
  1. Precision: money and hours use decimal.Decimal, never float64
  2. Type Safety: distinct ID types so a ShiftID cannot be passed as a UserID
  3. Snapshots: outcomes freeze the rate and income figures at logging time,
     so later rate edits do not rewrite history

USAGE:
  outcome := engine.LoggedOutcome{
      ShiftID:     "shift-1",
      ActualHours: engine.Dec(6.5),
      Tips:        engine.Dec(84),
      Sales:       engine.Dec(420),
  }.WithSnapshot(engine.Dec(15), engine.Dec(30))

SEE ALSO:
  - time.go: Date and ClockTime
  - period.go: DateRange and week/month windows
  - store.go: Persistence ports
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Dec builds a decimal from a float literal. Fixture and test convenience.
func Dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Percent returns part/whole × 100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Mean averages values, zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type ShiftID string
type EntryID string
type EmployerID string

// =============================================================================
// PLANNED SHIFT
// =============================================================================

type ShiftStatus string

const (
	StatusPlanned   ShiftStatus = "planned"
	StatusCompleted ShiftStatus = "completed"
	StatusMissed    ShiftStatus = "missed"
)

func (s ShiftStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusCompleted, StatusMissed:
		return true
	}
	return false
}

// PlannedShift is a scheduled interval. EndTime earlier than StartTime
// means the shift runs past midnight into the next day.
type PlannedShift struct {
	ID                ShiftID
	UserID            UserID
	EmployerID        *EmployerID
	Date              Date
	StartTime         ClockTime
	EndTime           ClockTime
	HourlyRate        decimal.Decimal
	LunchBreakMinutes int
	SalesTarget       *decimal.Decimal
	Status            ShiftStatus
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Overnight reports whether the shift ends on the following calendar day.
func (s PlannedShift) Overnight() bool {
	return s.EndTime.Before(s.StartTime)
}

// Bounds returns the absolute half-open interval [begin, end).
func (s PlannedShift) Bounds() (begin, end time.Time) {
	begin = s.Date.At(s.StartTime)
	endDate := s.Date
	if s.Overnight() {
		endDate = endDate.AddDays(1)
	}
	return begin, endDate.At(s.EndTime)
}

// ExpectedHours is the planned duration minus the unpaid break, never negative.
func (s PlannedShift) ExpectedHours() decimal.Decimal {
	begin, end := s.Bounds()
	minutes := int64(end.Sub(begin)/time.Minute) - int64(s.LunchBreakMinutes)
	if minutes < 0 {
		minutes = 0
	}
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))
}

// ExpectedEarnings is the planned wage for the planned hours.
func (s PlannedShift) ExpectedEarnings() decimal.Decimal {
	return s.HourlyRate.Mul(s.ExpectedHours())
}

// =============================================================================
// LOGGED OUTCOME (a.k.a. entry)
// =============================================================================

// LoggedOutcome records what actually happened for one planned shift.
// At most one exists per PlannedShift; the store enforces it.
type LoggedOutcome struct {
	ID          EntryID
	ShiftID     ShiftID
	UserID      UserID
	ActualStart *ClockTime
	ActualEnd   *ClockTime
	ActualHours decimal.Decimal
	Tips        decimal.Decimal
	Sales       decimal.Decimal
	OtherIncome decimal.Decimal
	CashOut     decimal.Decimal
	Notes       string

	// Snapshot fields, frozen at logging time
	HourlyRate          decimal.Decimal
	DeductionPercent    decimal.Decimal
	GrossIncome         decimal.Decimal
	TotalIncome         decimal.Decimal
	NetIncome           decimal.Decimal
	EffectiveHourlyRate decimal.Decimal

	CreatedAt time.Time
}

// TipIncome is tips plus other income minus the cash-out to the house.
func (o LoggedOutcome) TipIncome() decimal.Decimal {
	return o.Tips.Add(o.OtherIncome).Sub(o.CashOut)
}

// TipPercentage is tips/sales × 100, zero when there were no sales.
func (o LoggedOutcome) TipPercentage() decimal.Decimal {
	return Percent(o.Tips, o.Sales)
}

// WithSnapshot returns a copy with the derived income fields computed from
// the given rate and deduction percentage.
func (o LoggedOutcome) WithSnapshot(hourlyRate, deductionPercent decimal.Decimal) LoggedOutcome {
	o.HourlyRate = hourlyRate
	o.DeductionPercent = deductionPercent
	o.GrossIncome = hourlyRate.Mul(o.ActualHours)
	o.TotalIncome = o.GrossIncome.Add(o.TipIncome())
	o.NetIncome = o.TotalIncome.Sub(o.GrossIncome.Mul(deductionPercent).Div(hundred))
	o.EffectiveHourlyRate = decimal.Zero
	if o.ActualHours.IsPositive() {
		o.EffectiveHourlyRate = o.TotalIncome.Div(o.ActualHours)
	}
	return o
}

// Validate rejects negative amounts.
func (o LoggedOutcome) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"actual_hours", o.ActualHours},
		{"tips", o.Tips},
		{"sales", o.Sales},
		{"other", o.OtherIncome},
		{"cash_out", o.CashOut},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return &FieldError{Field: f.name, Reason: "must be non-negative"}
		}
	}
	return nil
}

// =============================================================================
// EMPLOYER
// =============================================================================

// Employer is deactivated, not deleted, once history references it.
type Employer struct {
	ID                EmployerID
	UserID            UserID
	Name              string
	DefaultHourlyRate decimal.Decimal
	Active            bool
	CreatedAt         time.Time
}

// =============================================================================
// RECONCILED SHIFT - Derived view, never persisted
// =============================================================================

// ReconciledShift joins a planned shift with its outcome and employer.
type ReconciledShift struct {
	Shift    PlannedShift
	Outcome  *LoggedOutcome
	Employer *Employer
}

// IsWorked reports whether an outcome was logged.
func (r ReconciledShift) IsWorked() bool { return r.Outcome != nil }

// Status is completed whenever an outcome exists, overriding a stale stored
// value; otherwise the stored status is used verbatim.
func (r ReconciledShift) Status() ShiftStatus {
	if r.Outcome != nil {
		return StatusCompleted
	}
	return r.Shift.Status
}

// Hours is the logged hours, or zero for unworked shifts.
func (r ReconciledShift) Hours() decimal.Decimal {
	if r.Outcome == nil {
		return decimal.Zero
	}
	return r.Outcome.ActualHours
}

// Wages is the planned rate times logged hours.
func (r ReconciledShift) Wages() decimal.Decimal {
	return r.Shift.HourlyRate.Mul(r.Hours())
}

func (r ReconciledShift) Tips() decimal.Decimal {
	if r.Outcome == nil {
		return decimal.Zero
	}
	return r.Outcome.Tips
}

func (r ReconciledShift) Sales() decimal.Decimal {
	if r.Outcome == nil {
		return decimal.Zero
	}
	return r.Outcome.Sales
}

// EmployerName falls back to a placeholder when the employer is unknown.
func (r ReconciledShift) EmployerName() string {
	if r.Employer == nil {
		return "Unknown Employer"
	}
	return r.Employer.Name
}

// =============================================================================
// USER PROFILE - Preferences the engine reads
// =============================================================================

// Targets are the user's optional goals; zero means "not configured".
type Targets struct {
	TipsDaily    decimal.Decimal
	TipsWeekly   decimal.Decimal
	TipsMonthly  decimal.Decimal
	SalesDaily   decimal.Decimal
	SalesWeekly  decimal.Decimal
	SalesMonthly decimal.Decimal
	HoursDaily   decimal.Decimal
	HoursWeekly  decimal.Decimal
	HoursMonthly decimal.Decimal
}

// Profile carries the per-user settings read by the gate and evaluator.
type Profile struct {
	UserID            UserID
	WeekStart         time.Weekday
	DefaultHourlyRate decimal.Decimal
	DeductionPercent  decimal.Decimal
	Targets           Targets
}

// =============================================================================
// VALIDATION
// =============================================================================

// FieldError names the offending field of a rejected record.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }
func (e *FieldError) Unwrap() error { return ErrInvalidInput }
