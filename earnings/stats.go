/*
stats.go - Dashboard totals over a set of reconciled shifts

PURPOSE:
  Reduces reconciled shifts into the numbers the dashboard shows. Pure,
  stateless, recomputed from scratch on every call: callers re-invoke it
  whenever the underlying shifts change.

WORKED SHIFTS:
  Only shifts with a logged outcome contribute hours, tips, sales and wages.
  Planned and missed shifts count toward TotalShifts and MissedShifts only.

AVERAGES:
  AverageTipPercentage is the mean of per-shift tips/sales ratios over
  worked shifts with sales > 0. It is NOT totalTips/totalSales:

    (sales, tips) = (100, 20), (0, 5), (200, 40)
    per-shift:      20%,       skip,   20%
    average:        20%

  AverageHourlyRate is the mean of the PLANNED rate over worked shifts.
  EffectiveHourlyRate is totalEarnings / totalHours.

SEE ALSO:
  - compare.go: Change against the previous window
  - engine/types.go: ReconciledShift accessors
*/
package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
)

// DashboardStats is derived, never persisted.
type DashboardStats struct {
	TotalShifts  int
	WorkedShifts int
	MissedShifts int

	TotalHours    decimal.Decimal
	TotalTips     decimal.Decimal
	TotalSales    decimal.Decimal
	TotalWages    decimal.Decimal
	TotalEarnings decimal.Decimal

	AverageTipPercentage decimal.Decimal
	AverageHourlyRate    decimal.Decimal
	EffectiveHourlyRate  decimal.Decimal
}

// ComputeStats never fails: shifts without outcomes contribute zeros.
func ComputeStats(shifts []engine.ReconciledShift) DashboardStats {
	stats := DashboardStats{
		TotalShifts:   len(shifts),
		TotalHours:    decimal.Zero,
		TotalTips:     decimal.Zero,
		TotalSales:    decimal.Zero,
		TotalWages:    decimal.Zero,
		TotalEarnings: decimal.Zero,
	}

	var tipRatios, rates []decimal.Decimal
	for _, rs := range shifts {
		if rs.Status() == engine.StatusMissed {
			stats.MissedShifts++
		}
		if !rs.IsWorked() {
			continue
		}
		stats.WorkedShifts++
		stats.TotalHours = stats.TotalHours.Add(rs.Hours())
		stats.TotalTips = stats.TotalTips.Add(rs.Tips())
		stats.TotalSales = stats.TotalSales.Add(rs.Sales())
		stats.TotalWages = stats.TotalWages.Add(rs.Wages())

		if rs.Sales().IsPositive() {
			tipRatios = append(tipRatios, rs.Outcome.TipPercentage())
		}
		rates = append(rates, rs.Shift.HourlyRate)
	}

	stats.TotalEarnings = stats.TotalWages.Add(stats.TotalTips)
	stats.AverageTipPercentage = engine.Mean(tipRatios)
	stats.AverageHourlyRate = engine.Mean(rates)
	if stats.TotalHours.IsPositive() {
		stats.EffectiveHourlyRate = stats.TotalEarnings.Div(stats.TotalHours)
	}
	return stats
}

// ByEmployer splits the shifts by employer name and computes stats for each.
// Shifts without a known employer are grouped under "Unknown Employer".
func ByEmployer(shifts []engine.ReconciledShift) map[string]DashboardStats {
	groups := make(map[string][]engine.ReconciledShift)
	for _, rs := range shifts {
		name := rs.EmployerName()
		groups[name] = append(groups[name], rs)
	}
	result := make(map[string]DashboardStats, len(groups))
	for name, group := range groups {
		result[name] = ComputeStats(group)
	}
	return result
}
