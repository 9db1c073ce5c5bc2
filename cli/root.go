package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/warp/shift-engine/achievements"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/quota"
	"github.com/warp/shift-engine/shifts"
)

// App holds references to the services the commands drive.
type App struct {
	Shifts       *shifts.Service
	Gate         *quota.Gate
	Achievements *achievements.Unlocker
	Sweeper      *api.MissedShiftSweeper

	// Seeder loads demo scenarios.
	Seeder *api.Handler

	// Today is the operator's current calendar day.
	Today func() engine.Date
}

// NewApp wires the commands against the same services the HTTP API uses.
func NewApp(h *api.Handler, sweeper *api.MissedShiftSweeper) *App {
	return &App{
		Shifts:       h.Shifts,
		Gate:         h.Gate,
		Achievements: h.Achievements,
		Sweeper:      sweeper,
		Seeder:       h,
		Today: func() engine.Date {
			return engine.DateOf(h.Now().In(h.Location))
		},
	}
}

// NewRootCmd creates the top-level "shiftctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shiftctl",
		Short:         "Operate the shift engine from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSweepCmd(app),
		newStatsCmd(app),
		newUsageCmd(app),
		newAchievementsCmd(app),
		newScenarioCmd(app),
	)

	return root
}

// userFlag registers the required --user flag.
func userFlag(cmd *cobra.Command, fs *pflag.FlagSet, p *string) {
	fs.StringVar(p, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
}

// dateFlag parses an optional YYYY-MM-DD flag, falling back to def.
func dateFlag(value string, def engine.Date) (engine.Date, error) {
	if value == "" {
		return def, nil
	}
	return engine.ParseDate(value)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
