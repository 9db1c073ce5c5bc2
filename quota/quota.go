/*
Package quota reports weekly usage against subscription tier caps.

The gate is advisory: it never blocks a write. Callers read WeeklyUsage and
decide. Counts are recomputed against a freshly computed window on every
call; nothing is cached between calls.

TIERS:

	none      unlimited              (Limits == nil)
	parttime  3 shifts / 3 entries
	full      unlimited              (Limits == nil)

Only parttime is capped.

WEEK WINDOW:

	start = today - ((weekday(today) - weekStart) mod 7), end = start + 6
	weekStart uses time.Weekday numbering: Sunday = 0 ... Saturday = 6.
*/
package quota

import (
	"time"

	"github.com/warp/shift-engine/engine"
)

// Tier is re-exported so callers of this package need not import engine for it.
type Tier = engine.Tier

const (
	TierNone     = engine.TierNone
	TierPartTime = engine.TierPartTime
	TierFull     = engine.TierFull
)

// Limits are the per-week caps for a restricted tier.
type Limits struct {
	Shifts  int
	Entries int
}

var tierLimits = map[Tier]*Limits{
	TierNone:     nil,
	TierPartTime: {Shifts: 3, Entries: 3},
	TierFull:     nil,
}

// LimitsFor returns the tier's caps, nil for an unrestricted tier.
// Unknown tiers are treated as none.
func LimitsFor(tier Tier) *Limits {
	l, ok := tierLimits[tier]
	if !ok {
		l = tierLimits[TierNone]
	}
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}

// WeeklyUsage is derived and never persisted.
type WeeklyUsage struct {
	Tier        Tier
	Window      engine.DateRange
	ShiftsUsed  int
	EntriesUsed int
	Limits      *Limits
	CanAddShift bool
	CanAddEntry bool
}

// ComputeWeekWindow returns the week containing today that begins on weekStart.
func ComputeWeekWindow(today engine.Date, weekStart time.Weekday) engine.DateRange {
	return engine.WeekWindow(today, weekStart)
}

// CheckLimits applies the tier caps to the given counts. Reaching a cap
// blocks further additions: canAdd is used < limit.
func CheckLimits(tier Tier, shiftsUsed, entriesUsed int) WeeklyUsage {
	usage := WeeklyUsage{Tier: tier, ShiftsUsed: shiftsUsed, EntriesUsed: entriesUsed}

	limits := LimitsFor(tier)
	if limits == nil {
		usage.CanAddShift = true
		usage.CanAddEntry = true
		return usage
	}
	usage.Limits = limits
	usage.CanAddShift = shiftsUsed < limits.Shifts
	usage.CanAddEntry = entriesUsed < limits.Entries
	return usage
}

// ShiftError returns a *engine.LimitError when no further shift may be added.
func (u WeeklyUsage) ShiftError() error {
	if u.CanAddShift || u.Limits == nil {
		return nil
	}
	return &engine.LimitError{Resource: "shifts", Used: u.ShiftsUsed, Limit: u.Limits.Shifts}
}

// EntryError is ShiftError for logged outcomes.
func (u WeeklyUsage) EntryError() error {
	if u.CanAddEntry || u.Limits == nil {
		return nil
	}
	return &engine.LimitError{Resource: "entries", Used: u.EntriesUsed, Limit: u.Limits.Entries}
}

// ResolveTier is the tier a subscription grants at now. Anything other than
// an active, unexpired subscription yields none.
func ResolveTier(sub engine.Subscription, now time.Time) Tier {
	if sub.Status != engine.SubscriptionActive {
		return TierNone
	}
	if sub.ExpiresAt != nil && !now.Before(*sub.ExpiresAt) {
		return TierNone
	}
	if _, ok := tierLimits[sub.Tier]; !ok {
		return TierNone
	}
	return sub.Tier
}
