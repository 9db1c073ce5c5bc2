package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/earnings"
	"github.com/warp/shift-engine/engine"
)

func newSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark past shifts without an outcome as missed, for every user",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Sweeper.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Swept %s for %s: %s marked missed",
				plural(result.Users, "user", "users"), result.Today, plural(result.Marked, "shift", "shifts"))
			if result.Failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d failed", result.Failed)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	var user, from, to string
	var compare bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Dashboard statistics for a date window (default: current month)",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.Today()
			start, err := dateFlag(from, engine.StartOfMonth(today))
			if err != nil {
				return err
			}
			end, err := dateFlag(to, engine.EndOfMonth(today))
			if err != nil {
				return err
			}
			window := engine.DateRange{Start: start, End: end}
			if err := window.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			current, err := app.Shifts.ListReconciled(ctx, engine.UserID(user), &window)
			if err != nil {
				return err
			}
			stats := earnings.ComputeStats(current)

			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Window\t%s\n", window)
			fmt.Fprintf(w, "Shifts\t%d (%d worked, %d missed)\n", stats.TotalShifts, stats.WorkedShifts, stats.MissedShifts)
			fmt.Fprintf(w, "Hours\t%s\n", stats.TotalHours.StringFixed(2))
			fmt.Fprintf(w, "Wages\t%s\n", stats.TotalWages.StringFixed(2))
			fmt.Fprintf(w, "Tips\t%s\n", stats.TotalTips.StringFixed(2))
			fmt.Fprintf(w, "Earnings\t%s\n", stats.TotalEarnings.StringFixed(2))
			fmt.Fprintf(w, "Avg tip %%\t%s\n", stats.AverageTipPercentage.StringFixed(1))
			fmt.Fprintf(w, "Effective hourly\t%s\n", stats.EffectiveHourlyRate.StringFixed(2))

			if compare {
				prevWindow := earnings.PreviousWindow(window)
				previous, err := app.Shifts.ListReconciled(ctx, engine.UserID(user), &prevWindow)
				if err != nil {
					return err
				}
				ch := earnings.Compare(stats, earnings.ComputeStats(previous))
				fmt.Fprintf(w, "vs %s\tearnings %s%%, tips %s%%, hours %s%%\n", prevWindow,
					ch.Earnings.StringFixed(1), ch.Tips.StringFixed(1), ch.Hours.StringFixed(1))
			}
			return w.Flush()
		},
	}

	userFlag(cmd, cmd.Flags(), &user)
	cmd.Flags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&compare, "compare", false, "Compare with the previous window of equal length")

	return cmd
}

func newUsageCmd(app *App) *cobra.Command {
	var user, today string

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Weekly shift and entry usage against the subscription caps",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dateFlag(today, app.Today())
			if err != nil {
				return err
			}
			u, err := app.Gate.Usage(cmd.Context(), engine.UserID(user), day)
			if err != nil {
				return err
			}

			limit := func(n *int) string {
				if n == nil {
					return "unlimited"
				}
				return fmt.Sprint(*n)
			}
			var shiftsCap, entriesCap *int
			if u.Limits != nil {
				shiftsCap, entriesCap = &u.Limits.Shifts, &u.Limits.Entries
			}

			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Tier\t%s\n", u.Tier)
			fmt.Fprintf(w, "Week\t%s\n", u.Window)
			fmt.Fprintf(w, "Shifts\t%d / %s\n", u.ShiftsUsed, limit(shiftsCap))
			fmt.Fprintf(w, "Entries\t%d / %s\n", u.EntriesUsed, limit(entriesCap))
			return w.Flush()
		},
	}

	userFlag(cmd, cmd.Flags(), &user)
	cmd.Flags().StringVar(&today, "today", "", "Day inside the week to report (YYYY-MM-DD)")

	return cmd
}

func newAchievementsCmd(app *App) *cobra.Command {
	var user string
	var evaluate bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievement progress, optionally unlocking what qualifies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID := engine.UserID(user)

			if evaluate {
				ids, err := app.Achievements.Run(ctx, userID)
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", id)
				}
			}

			progress, err := app.Achievements.Progress(ctx, userID)
			if err != nil {
				return err
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tBADGE\tCURRENT\tREQUIRED\tUNLOCKED")
			for _, p := range progress {
				mark := "-"
				if p.Unlocked {
					mark = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Badge, p.Current.StringFixed(2), p.Requirement, mark)
			}
			return w.Flush()
		},
	}

	userFlag(cmd, cmd.Flags(), &user)
	cmd.Flags().BoolVar(&evaluate, "evaluate", false, "Run an unlock pass first")

	return cmd
}

func newScenarioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Demo scenarios",
	}
	cmd.AddCommand(newScenarioListCmd(), newScenarioLoadCmd(app))
	return cmd
}

func newScenarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := table(cmd.OutOrStdout())
			for _, s := range api.Scenarios() {
				fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Description)
			}
			return w.Flush()
		},
	}
}

func newScenarioLoadCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "load <scenario>",
		Short: "Seed a demo scenario for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unlocked, err := app.Seeder.LoadScenarioFor(cmd.Context(), engine.UserID(user), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s for %s (%s unlocked)\n",
				args[0], user, plural(len(unlocked), "achievement", "achievements"))
			return nil
		},
	}

	userFlag(cmd, cmd.Flags(), &user)

	return cmd
}
