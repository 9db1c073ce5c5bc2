/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (shiftengine.yaml, then environment)
  2. Set up the zerolog logger
  3. Initialize SQLite store
  4. Create API handler and router
  5. Start the missed-shift sweeper
  6. Start server with graceful shutdown

ENVIRONMENT:
  SERVER_PORT                HTTP server port (default: 8080)
  DB_PATH                    SQLite database path (default: shifts.db)
                             Use ":memory:" for in-memory database
  LOG_LEVEL, LOG_PRETTY      Logger level and console output
  CORS_ORIGINS               Allowed browser origins
  SWEEP_INTERVAL             Missed-shift sweep period (default: 1h)
  SWEEP_ENABLED              Run the sweeper at all (default: true)
  TIMEZONE                   Zone that decides "today" (default: UTC)
  DEFAULT_HOURLY_RATE        Rate for shifts with no rate and no employer
  DEFAULT_DEDUCTION_PERCENT  Payroll deduction applied to wages

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the sweeper
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection

SEE ALSO:
  - config/config.go: Configuration loading
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/logging"
	"github.com/warp/shift-engine/shifts"
	"github.com/warp/shift-engine/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogPretty)
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	shifts.DefaultDeductionPercent = decimal.NewFromFloat(cfg.DefaultDeductionPercent)

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to initialize database")
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, logger)
	handler.Location = loc
	handler.DefaultHourlyRate = decimal.NewFromFloat(cfg.DefaultHourlyRate)

	router := api.NewRouter(handler, api.RouterOptions{AllowedOrigins: cfg.CORSOrigins})

	sweeper := api.NewMissedShiftSweeper(store, handler.Shifts, logger)
	sweeper.Location = loc
	sweeper.CheckInterval = cfg.SweepInterval
	sweeper.Enabled = cfg.SweepEnabled
	sweeper.Start()

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("timezone", cfg.Timezone).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server stopped")
}
