package shifts

import (
	"sort"

	"github.com/warp/shift-engine/engine"
)

// =============================================================================
// RECONCILE - Join planned shifts with outcomes and employers
// =============================================================================

// Reconcile produces exactly one ReconciledShift per planned shift (inside
// window, when given), ordered by date then start time.
//
// Imperfect data is tolerated, not reported:
//   - outcomes whose shift is absent are orphaned and dropped
//   - a shift referencing an unknown employer gets a nil Employer
//   - if several outcomes reference one shift (a store that failed to
//     enforce uniqueness), the first in input order wins
//
// Inputs are never mutated; outcomes and employers in the result are copies.
func Reconcile(
	planned []engine.PlannedShift,
	outcomes []engine.LoggedOutcome,
	employers []engine.Employer,
	window *engine.DateRange,
) []engine.ReconciledShift {
	byShift := make(map[engine.ShiftID]engine.LoggedOutcome, len(outcomes))
	for _, o := range outcomes {
		if _, dup := byShift[o.ShiftID]; !dup {
			byShift[o.ShiftID] = o
		}
	}

	byID := make(map[engine.EmployerID]engine.Employer, len(employers))
	for _, e := range employers {
		byID[e.ID] = e
	}

	result := make([]engine.ReconciledShift, 0, len(planned))
	for _, s := range planned {
		if window != nil && !window.Contains(s.Date) {
			continue
		}
		rs := engine.ReconciledShift{Shift: s}
		if o, ok := byShift[s.ID]; ok {
			rs.Outcome = &o
		}
		if s.EmployerID != nil {
			if e, ok := byID[*s.EmployerID]; ok {
				rs.Employer = &e
			}
		}
		result = append(result, rs)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Shift, result[j].Shift
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.StartTime.Before(b.StartTime)
	})
	return result
}

// Orphans returns the outcomes that reference no planned shift. Reconcile
// drops these silently; this lets a caller surface them for cleanup.
func Orphans(planned []engine.PlannedShift, outcomes []engine.LoggedOutcome) []engine.LoggedOutcome {
	known := make(map[engine.ShiftID]bool, len(planned))
	for _, s := range planned {
		known[s.ID] = true
	}
	var orphans []engine.LoggedOutcome
	for _, o := range outcomes {
		if !known[o.ShiftID] {
			orphans = append(orphans, o)
		}
	}
	return orphans
}

// FilterStatus keeps the shifts whose derived status is one of statuses.
func FilterStatus(shifts []engine.ReconciledShift, statuses ...engine.ShiftStatus) []engine.ReconciledShift {
	want := make(map[engine.ShiftStatus]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	var result []engine.ReconciledShift
	for _, rs := range shifts {
		if want[rs.Status()] {
			result = append(result, rs)
		}
	}
	return result
}
