package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is read from defaults, an optional shiftengine.yaml and the
// environment, in increasing order of precedence.
type Config struct {
	ServerPort              string        `mapstructure:"SERVER_PORT"`
	DBPath                  string        `mapstructure:"DB_PATH"`
	LogLevel                string        `mapstructure:"LOG_LEVEL"`
	LogPretty               bool          `mapstructure:"LOG_PRETTY"`
	CORSOrigins             []string      `mapstructure:"CORS_ORIGINS"`
	SweepInterval           time.Duration `mapstructure:"SWEEP_INTERVAL"`
	SweepEnabled            bool          `mapstructure:"SWEEP_ENABLED"`
	Timezone                string        `mapstructure:"TIMEZONE"`
	DefaultHourlyRate       float64       `mapstructure:"DEFAULT_HOURLY_RATE"`
	DefaultDeductionPercent float64       `mapstructure:"DEFAULT_DEDUCTION_PERCENT"`
}

// Location resolves Timezone; "today" for the missed sweep is taken there.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// LoadConfig reads configuration from file or environment variables.
// configPath may be empty, in which case shiftengine.yaml is looked up in
// the working directory and silently skipped when absent.
func LoadConfig(configPath string) (Config, error) {
	return load(viper.New(), configPath)
}

func load(v *viper.Viper, configPath string) (config Config, err error) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_PATH", "shifts.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("SWEEP_INTERVAL", time.Hour)
	v.SetDefault("SWEEP_ENABLED", true)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("DEFAULT_HOURLY_RATE", 15)
	v.SetDefault("DEFAULT_DEDUCTION_PERCENT", 30)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("shiftengine")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	// Read in environment variables that match the keys.
	v.AutomaticEnv()

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	if config.SweepInterval <= 0 {
		return config, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", config.SweepInterval)
	}
	if _, err := config.Location(); err != nil {
		return config, fmt.Errorf("TIMEZONE: %w", err)
	}
	return config, nil
}
