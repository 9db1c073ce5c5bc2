package engine

import "time"

// =============================================================================
// DATE RANGE - Inclusive window of calendar days
// =============================================================================

// DateRange is the window every aggregation runs over: [Start, End],
// both ends inclusive.
//
// Examples:
//   - Week of 2024-01-08 (Monday start): 2024-01-08 .. 2024-01-14
//   - January 2024: 2024-01-01 .. 2024-01-31
type DateRange struct {
	Start Date
	End   Date
}

// Contains returns true if d is within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Len is the number of days in the range.
func (r DateRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

func (r DateRange) Validate() error {
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// Previous returns the window of the same length ending the day before Start.
func (r DateRange) Previous() DateRange {
	n := r.Len()
	end := r.Start.AddDays(-1)
	return DateRange{Start: end.AddDays(-(n - 1)), End: end}
}

// =============================================================================
// WINDOW CALCULATORS
// =============================================================================

// WeekWindow returns the seven-day window containing today that starts on
// weekStart. The offset uses a non-negative modulo so any configured start
// day works, including one later in the week than today.
func WeekWindow(today Date, weekStart time.Weekday) DateRange {
	offset := ((int(today.Weekday())-int(weekStart))%7 + 7) % 7
	start := today.AddDays(-offset)
	return DateRange{Start: start, End: start.AddDays(6)}
}

// MonthWindow returns the calendar month containing d.
func MonthWindow(d Date) DateRange {
	return DateRange{Start: StartOfMonth(d), End: EndOfMonth(d)}
}
