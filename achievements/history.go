package achievements

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
)

// =============================================================================
// HISTORY - Aggregates over a user's full history
// =============================================================================

// History holds every aggregate a catalogue predicate reads.
// Build it with BuildHistory; the zero value qualifies for nothing.
type History struct {
	AverageTipPercentage  decimal.Decimal
	AverageHourlyEarnings decimal.Decimal
	LongestStreakDays     int
	BestShiftSales        decimal.Decimal

	// BestDailyTipTargetPercentage is the best day's tips as a percentage of
	// the daily tip target. Zero when no daily tip target is configured.
	BestDailyTipTargetPercentage decimal.Decimal

	WeeksAllTargetsMet  int
	MonthsAllTargetsMet int
}

// Value returns the aggregate the metric names.
func (h History) Value(m Metric) decimal.Decimal {
	switch m {
	case MetricAverageTipPercentage:
		return h.AverageTipPercentage
	case MetricAverageHourly:
		return h.AverageHourlyEarnings
	case MetricLongestStreak:
		return decimal.NewFromInt(int64(h.LongestStreakDays))
	case MetricBestShiftSales:
		return h.BestShiftSales
	case MetricBestDailyTipTarget:
		return h.BestDailyTipTargetPercentage
	case MetricWeeksAllTargetsMet:
		return decimal.NewFromInt(int64(h.WeeksAllTargetsMet))
	case MetricMonthsAllTargetsMet:
		return decimal.NewFromInt(int64(h.MonthsAllTargetsMet))
	}
	return decimal.Zero
}

// BuildHistory reduces the user's full reconciled history. Only worked
// shifts contribute. Days are the shift dates as stored, in the user's local
// calendar; no time zone conversion is applied.
func BuildHistory(shifts []engine.ReconciledShift, profile engine.Profile) History {
	var (
		tipRatios []decimal.Decimal
		hourly    []decimal.Decimal
		h         History
	)

	days := make(map[engine.Date]*totals)
	weeks := make(map[engine.Date]*totals)
	months := make(map[engine.Date]*totals)

	for _, rs := range shifts {
		if !rs.IsWorked() {
			continue
		}
		o := rs.Outcome

		if o.Sales.IsPositive() {
			tipRatios = append(tipRatios, o.TipPercentage())
		}
		if o.ActualHours.IsPositive() {
			hourly = append(hourly, hourlyEarnings(rs))
		}
		if o.Sales.GreaterThan(h.BestShiftSales) {
			h.BestShiftSales = o.Sales
		}

		d := rs.Shift.Date
		bucket(days, d).add(o)
		bucket(weeks, engine.WeekWindow(d, profile.WeekStart).Start).add(o)
		bucket(months, engine.StartOfMonth(d)).add(o)
	}

	h.AverageTipPercentage = engine.Mean(tipRatios)
	h.AverageHourlyEarnings = engine.Mean(hourly)
	h.LongestStreakDays = LongestStreak(keys(days))
	h.BestDailyTipTargetPercentage = bestDailyTipTarget(days, profile.Targets.TipsDaily)

	weekly := periodTargets{profile.Targets.TipsWeekly, profile.Targets.SalesWeekly, profile.Targets.HoursWeekly}
	monthly := periodTargets{profile.Targets.TipsMonthly, profile.Targets.SalesMonthly, profile.Targets.HoursMonthly}
	for _, t := range weeks {
		if weekly.met(t) {
			h.WeeksAllTargetsMet++
		}
	}
	for _, t := range months {
		if monthly.met(t) {
			h.MonthsAllTargetsMet++
		}
	}
	return h
}

// hourlyEarnings is (rate × hours + tips + other − cashOut) / hours, using
// the rate frozen on the outcome when present.
func hourlyEarnings(rs engine.ReconciledShift) decimal.Decimal {
	o := rs.Outcome
	rate := o.HourlyRate
	if rate.IsZero() {
		rate = rs.Shift.HourlyRate
	}
	return rate.Mul(o.ActualHours).Add(o.TipIncome()).Div(o.ActualHours)
}

// =============================================================================
// STREAK
// =============================================================================

// LongestStreak returns the longest run of consecutive calendar days in
// dates, anywhere in history. Duplicates count once.
func LongestStreak(dates []engine.Date) int {
	if len(dates) == 0 {
		return 0
	}
	sorted := make([]engine.Date, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch engine.DaysBetween(sorted[i-1], sorted[i]) {
		case 0:
			continue
		case 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// =============================================================================
// TARGETS
// =============================================================================

type totals struct {
	tips  decimal.Decimal
	sales decimal.Decimal
	hours decimal.Decimal
}

func (t *totals) add(o *engine.LoggedOutcome) {
	t.tips = t.tips.Add(o.Tips)
	t.sales = t.sales.Add(o.Sales)
	t.hours = t.hours.Add(o.ActualHours)
}

func bucket(m map[engine.Date]*totals, key engine.Date) *totals {
	t, ok := m[key]
	if !ok {
		t = &totals{}
		m[key] = t
	}
	return t
}

func keys(m map[engine.Date]*totals) []engine.Date {
	out := make([]engine.Date, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	return out
}

func bestDailyTipTarget(days map[engine.Date]*totals, target decimal.Decimal) decimal.Decimal {
	best := decimal.Zero
	if !target.IsPositive() {
		return best
	}
	for _, t := range days {
		if p := engine.Percent(t.tips, target); p.GreaterThan(best) {
			best = p
		}
	}
	return best
}

// periodTargets are the tips, sales and hours goals for one period length.
type periodTargets struct {
	tips, sales, hours decimal.Decimal
}

// met requires at least one configured (> 0) target and every configured
// target reached.
func (p periodTargets) met(t *totals) bool {
	configured := false
	for _, pair := range [][2]decimal.Decimal{{p.tips, t.tips}, {p.sales, t.sales}, {p.hours, t.hours}} {
		target, actual := pair[0], pair[1]
		if !target.IsPositive() {
			continue
		}
		configured = true
		if actual.LessThan(target) {
			return false
		}
	}
	return configured
}

