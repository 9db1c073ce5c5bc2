package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
)

// Changes holds percentage change against a previous window.
// A metric whose previous value is zero reports zero change.
type Changes struct {
	Earnings decimal.Decimal
	Wages    decimal.Decimal
	Tips     decimal.Decimal
	Hours    decimal.Decimal
	Sales    decimal.Decimal
}

func Compare(current, previous DashboardStats) Changes {
	return Changes{
		Earnings: percentChange(current.TotalEarnings, previous.TotalEarnings),
		Wages:    percentChange(current.TotalWages, previous.TotalWages),
		Tips:     percentChange(current.TotalTips, previous.TotalTips),
		Hours:    percentChange(current.TotalHours, previous.TotalHours),
		Sales:    percentChange(current.TotalSales, previous.TotalSales),
	}
}

func percentChange(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return engine.Percent(cur.Sub(prev), prev.Abs())
}

// PreviousWindow is the equal-length window ending the day before window.
func PreviousWindow(window engine.DateRange) engine.DateRange {
	return window.Previous()
}
