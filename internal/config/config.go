// Package config loads and validates the planner's YAML configuration.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Configuration holds all settings for the tax planner.
type Configuration struct {
	// APIBaseURL is the payrun back-end root, e.g. https://payrun.example.com/api.
	APIBaseURL string `yaml:"apiBaseUrl"`
	// UserID identifies the employee whose declaration is being planned.
	// It may be given either in the clear or in the encrypted form the
	// back-end hands out in links.
	UserID string `yaml:"userId"`
	// FinancialYear in "YYYY-YYYY" form, e.g. "2025-2026".
	FinancialYear string `yaml:"financialYear"`
	// StatutoryFile optionally overrides the built-in ceiling table.
	StatutoryFile string        `yaml:"statutoryFile,omitempty"`
	Timing        TimingConfig  `yaml:"timing,omitempty"`
	Logging       LoggingConfig `yaml:"logging,omitempty"`
	Output        OutputConfig  `yaml:"output,omitempty"`
}

// TimingConfig tunes the submission scheduler.
type TimingConfig struct {
	QuietPeriodMS int `yaml:"quietPeriodMs,omitempty"`
	MinVisibleMS  int `yaml:"minVisibleMs,omitempty"`
}

// QuietPeriod returns the debounce window, defaulting to one second.
func (t TimingConfig) QuietPeriod() time.Duration {
	if t.QuietPeriodMS <= 0 {
		return time.Second
	}
	return time.Duration(t.QuietPeriodMS) * time.Millisecond
}

// MinVisible returns the loading floor, defaulting to one second.
func (t TimingConfig) MinVisible() time.Duration {
	if t.MinVisibleMS < 0 {
		return 0
	}
	if t.MinVisibleMS == 0 {
		return time.Second
	}
	return time.Duration(t.MinVisibleMS) * time.Millisecond
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds report output options.
type OutputConfig struct {
	// Directory receives generated tax reports. Empty means the current
	// working directory.
	Directory string `yaml:"directory,omitempty"`
}

// LoadConfiguration reads the YAML configuration at configPath.
// Environment variables override file values via viper's AutomaticEnv.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("TAXPLANNER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the fields a run cannot proceed without.
func (conf *Configuration) Validate() error {
	if conf.APIBaseURL == "" {
		return fmt.Errorf("apiBaseUrl is required")
	}
	if conf.UserID == "" {
		return fmt.Errorf("userId is required")
	}
	if conf.FinancialYear == "" {
		conf.FinancialYear = "2025-2026"
	}
	return nil
}

// BuildLogger creates a zap logger from the logging configuration. An
// explicit level override takes precedence over the configured one.
func BuildLogger(loggingConfig LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zcfg zap.Config
	switch format {
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	case "json":
		zcfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		zcfg.OutputPaths = []string{loggingConfig.OutputFile}
		zcfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zcfg.Build()
}
