package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/cli"
	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/logging"
	"github.com/warp/shift-engine/shifts"
	"github.com/warp/shift-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Same file and environment as the server, so both see one database.
	cfg, err := config.LoadConfig(os.Getenv("SHIFTENGINE_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.SetupWriter(os.Stderr, cfg.LogLevel, true)
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	shifts.DefaultDeductionPercent = decimal.NewFromFloat(cfg.DefaultDeductionPercent)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, logger)
	handler.Location = loc
	handler.DefaultHourlyRate = decimal.NewFromFloat(cfg.DefaultHourlyRate)

	sweeper := api.NewMissedShiftSweeper(store, handler.Shifts, logger)
	sweeper.Location = loc

	rootCmd := cli.NewRootCmd(cli.NewApp(handler, sweeper))
	return rootCmd.Execute()
}
