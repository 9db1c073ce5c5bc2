/*
Package achievements unlocks badges from a user's full shift history.

FILES:
  catalog.go:  The fixed twelve-entry catalogue, in evaluation order
  history.go:  Reduction of reconciled shifts into the aggregates predicates read
  evaluate.go: Pure evaluation against an already-unlocked set
  unlocker.go: Store-backed pass that persists each unlock independently

CATALOGUE:
  id                 category    badge      requirement
  tip_master         earnings    silver     avg tip %        >= 20
  elite_server       earnings    gold       avg tip %        >= 25
  tip_champion       earnings    platinum   avg tip %        >= 30
  steady_tracker     streaks     silver     longest streak   >= 7 days
  dedicated_logger   streaks     gold       longest streak   >= 30 days
  tracking_legend    streaks     platinum   longest streak   >= 100 days
  high_earner        earnings    silver     avg hourly       >= 30
  top_performer      earnings    gold       avg hourly       >= 50
  sales_star         milestones  gold       one shift sales  >= 1000
  target_crusher     milestones  silver     one day's tips   >= 150% of daily tip target
  goal_getter        milestones  gold       weeks with every weekly target met   >= 1
  perfect_month      milestones  platinum   months with every monthly target met >= 1

Unlocks are monotonic: once stored, an achievement is never re-reported or
revoked.
*/
package achievements

import (
	"github.com/shopspring/decimal"
)

// ID identifies a catalogue entry. Stored verbatim in user_achievements.
type ID string

const (
	TipMaster       ID = "tip_master"
	EliteServer     ID = "elite_server"
	TipChampion     ID = "tip_champion"
	SteadyTracker   ID = "steady_tracker"
	DedicatedLogger ID = "dedicated_logger"
	TrackingLegend  ID = "tracking_legend"
	HighEarner      ID = "high_earner"
	TopPerformer    ID = "top_performer"
	SalesStar       ID = "sales_star"
	TargetCrusher   ID = "target_crusher"
	GoalGetter      ID = "goal_getter"
	PerfectMonth    ID = "perfect_month"
)

type Category string

const (
	CategoryEarnings   Category = "earnings"
	CategoryStreaks    Category = "streaks"
	CategoryMilestones Category = "milestones"
)

// Badge is the display tier of an achievement.
type Badge string

const (
	BadgeSilver   Badge = "silver"
	BadgeGold     Badge = "gold"
	BadgePlatinum Badge = "platinum"
)

// Metric names the History aggregate a definition compares against.
type Metric string

const (
	MetricAverageTipPercentage Metric = "average_tip_percentage"
	MetricAverageHourly        Metric = "average_hourly_earnings"
	MetricLongestStreak        Metric = "longest_streak_days"
	MetricBestShiftSales       Metric = "best_shift_sales"
	MetricBestDailyTipTarget   Metric = "best_daily_tip_target_percentage"
	MetricWeeksAllTargetsMet   Metric = "weeks_all_targets_met"
	MetricMonthsAllTargetsMet  Metric = "months_all_targets_met"
)

// Definition is one catalogue entry. It qualifies when the metric's value
// in History is at least Requirement.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Category    Category
	Badge       Badge
	Metric      Metric
	Requirement decimal.Decimal
}

var catalog = []Definition{
	{TipMaster, "Tip Master", "Average 20% tips across your shifts", CategoryEarnings, BadgeSilver, MetricAverageTipPercentage, decimal.NewFromInt(20)},
	{EliteServer, "Elite Server", "Average 25% tips across your shifts", CategoryEarnings, BadgeGold, MetricAverageTipPercentage, decimal.NewFromInt(25)},
	{TipChampion, "Tip Champion", "Average 30% tips across your shifts", CategoryEarnings, BadgePlatinum, MetricAverageTipPercentage, decimal.NewFromInt(30)},
	{SteadyTracker, "Steady Tracker", "Log shifts 7 days in a row", CategoryStreaks, BadgeSilver, MetricLongestStreak, decimal.NewFromInt(7)},
	{DedicatedLogger, "Dedicated Logger", "Log shifts 30 days in a row", CategoryStreaks, BadgeGold, MetricLongestStreak, decimal.NewFromInt(30)},
	{TrackingLegend, "Tracking Legend", "Log shifts 100 days in a row", CategoryStreaks, BadgePlatinum, MetricLongestStreak, decimal.NewFromInt(100)},
	{HighEarner, "High Earner", "Average $30 per hour including tips", CategoryEarnings, BadgeSilver, MetricAverageHourly, decimal.NewFromInt(30)},
	{TopPerformer, "Top Performer", "Average $50 per hour including tips", CategoryEarnings, BadgeGold, MetricAverageHourly, decimal.NewFromInt(50)},
	{SalesStar, "Sales Star", "Ring up $1000 in sales in a single shift", CategoryMilestones, BadgeGold, MetricBestShiftSales, decimal.NewFromInt(1000)},
	{TargetCrusher, "Target Crusher", "Beat your daily tip target by 50%", CategoryMilestones, BadgeSilver, MetricBestDailyTipTarget, decimal.NewFromInt(150)},
	{GoalGetter, "Goal Getter", "Meet every weekly target in one week", CategoryMilestones, BadgeGold, MetricWeeksAllTargetsMet, decimal.NewFromInt(1)},
	{PerfectMonth, "Perfect Month", "Meet every monthly target in one month", CategoryMilestones, BadgePlatinum, MetricMonthsAllTargetsMet, decimal.NewFromInt(1)},
}

// Catalog returns the definitions in evaluation order. The slice is a copy.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a definition by id.
func Lookup(id ID) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
