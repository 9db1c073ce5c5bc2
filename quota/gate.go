package quota

import (
	"context"
	"time"

	"github.com/warp/shift-engine/engine"
)

// Source is the slice of the store the gate reads.
type Source interface {
	GetProfile(ctx context.Context, userID engine.UserID) (engine.Profile, error)
	GetSubscription(ctx context.Context, userID engine.UserID) (engine.Subscription, error)
	ListShifts(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.PlannedShift, error)
	ListEntries(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.LoggedOutcome, error)
}

// Gate computes WeeklyUsage from the store. It keeps no state between calls.
type Gate struct {
	Source Source
	Now    func() time.Time
}

func NewGate(src Source) *Gate {
	return &Gate{Source: src, Now: time.Now}
}

// Usage reads the user's tier and week start, computes the window containing
// today, and counts shifts and entries dated inside it.
// A user without a profile uses a Sunday week start. Without a subscription
// the tier is none, which is unrestricted.
func (g *Gate) Usage(ctx context.Context, userID engine.UserID, today engine.Date) (WeeklyUsage, error) {
	weekStart := time.Sunday
	profile, err := g.Source.GetProfile(ctx, userID)
	switch {
	case err == nil:
		weekStart = profile.WeekStart
	case !engine.IsNotFound(err):
		return WeeklyUsage{}, engine.WrapStore("get profile", err)
	}

	tier := TierNone
	sub, err := g.Source.GetSubscription(ctx, userID)
	switch {
	case err == nil:
		tier = ResolveTier(sub, g.Now())
	case !engine.IsNotFound(err):
		return WeeklyUsage{}, engine.WrapStore("get subscription", err)
	}

	window := ComputeWeekWindow(today, weekStart)
	planned, err := g.Source.ListShifts(ctx, userID, &window)
	if err != nil {
		return WeeklyUsage{}, engine.WrapStore("list shifts", err)
	}
	entries, err := g.Source.ListEntries(ctx, userID, &window)
	if err != nil {
		return WeeklyUsage{}, engine.WrapStore("list entries", err)
	}

	usage := CheckLimits(tier, len(planned), len(entries))
	usage.Window = window
	return usage, nil
}
