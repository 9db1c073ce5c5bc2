/*
Package shifts implements the planned-vs-actual side of the engine.

FILES:
  overlap.go:   Conflict detection between shift intervals
  reconcile.go: Joining planned shifts with outcomes and employers
  lifecycle.go: Schedule, complete, mark-missed and sweep operations

OVERLAP RULES:
  Each shift normalizes to an absolute half-open interval [begin, end).
  An end time earlier than the start time pushes the end to the next day,
  unless the candidate carries an explicit end date.

    A: 09:00-17:00   B: 17:00-22:00   -> touch, no conflict
    A: 09:00-17:00   B: 16:59-22:00   -> conflict

  Two intervals conflict iff begin1 < end2 AND begin2 < end1.

  Missed shifts and the shift being edited are ignored. Detection is
  advisory: two concurrent writers can both pass the check. Only a
  store-level guarantee makes the invariant authoritative.
*/
package shifts

import (
	"time"

	"github.com/warp/shift-engine/engine"
)

// =============================================================================
// CANDIDATE INTERVAL
// =============================================================================

// Candidate is an interval about to be admitted or edited.
// EndDate is optional; when nil, the end falls on StartDate or, if EndTime
// is before StartTime, on the following day.
type Candidate struct {
	StartDate engine.Date
	StartTime engine.ClockTime
	EndDate   *engine.Date
	EndTime   engine.ClockTime
}

// CandidateFor builds the candidate interval a planned shift occupies.
func CandidateFor(s engine.PlannedShift) Candidate {
	return Candidate{StartDate: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
}

// Bounds returns the absolute half-open interval [begin, end).
func (c Candidate) Bounds() (begin, end time.Time) {
	begin = c.StartDate.At(c.StartTime)
	endDate := c.StartDate
	switch {
	case c.EndDate != nil:
		endDate = *c.EndDate
	case c.EndTime.Before(c.StartTime):
		endDate = endDate.AddDays(1)
	}
	return begin, endDate.At(c.EndTime)
}

// Validate rejects an explicit end that does not come after the start.
// Without EndDate the end is always placed after the start.
func (c Candidate) Validate() error {
	if c.EndDate == nil {
		return nil
	}
	begin, end := c.Bounds()
	if !end.After(begin) {
		return &engine.FieldError{Field: "end_date", Reason: "end must be after start"}
	}
	return nil
}

// =============================================================================
// DETECTION
// =============================================================================

// Intersects reports whether two half-open intervals share any instant.
func Intersects(begin1, end1, begin2, end2 time.Time) bool {
	return begin1.Before(end2) && begin2.Before(end1)
}

// DetectOverlap returns the existing shifts the candidate conflicts with,
// in input order. Missed shifts and excludeID (the shift being edited; pass
// "" when admitting a new one) never conflict. Returns nil when nothing
// conflicts.
func DetectOverlap(c Candidate, existing []engine.PlannedShift, excludeID engine.ShiftID) []engine.PlannedShift {
	begin, end := c.Bounds()

	var conflicts []engine.PlannedShift
	for _, s := range existing {
		if s.Status == engine.StatusMissed {
			continue
		}
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		sBegin, sEnd := s.Bounds()
		if Intersects(begin, end, sBegin, sEnd) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}

// NeighbourWindow is the date range a caller must load so DetectOverlap sees
// every shift that could reach into the candidate: overnight shifts from the
// day before, through the candidate's end date.
func NeighbourWindow(c Candidate) engine.DateRange {
	_, end := c.Bounds()
	return engine.DateRange{Start: c.StartDate.AddDays(-1), End: engine.DateOf(end)}
}
