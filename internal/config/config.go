// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/sirupsen/logrus"
)

// Environment variable names read by FromEnv
const (
	EnvSeed           = "PSEUDONYMIZER_SEED"
	EnvDateShiftRange = "PSEUDONYMIZER_DATE_SHIFT_RANGE"
	EnvAppEnv         = "APP_ENV"
	EnvGoEnv          = "GO_ENV"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvLogLevel       = "LOG_LEVEL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Seed for reproducible output
	Seed string `json:"seed,omitempty" validate:"max=256"`
	// CandidateIndex selects the sequential label
	CandidateIndex int `json:"candidate_index,omitempty" validate:"gte=0"`
	// DateShiftRange in months; 0 means default
	DateShiftRange int `json:"date_shift_range,omitempty" validate:"gte=0,lte=120"`
	// PreserveChronology nil means true
	PreserveChronology *bool `json:"preserve_chronology,omitempty"`
	// DevMode nil means derive from environment
	DevMode *bool `json:"dev_mode,omitempty"`

	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,url"`
	LogLevel    string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave
// fields at their zero value.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Seed:        os.Getenv(EnvSeed),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
		LogLevel:    strings.ToLower(os.Getenv(EnvLogLevel)),
	}

	if v := os.Getenv(EnvDateShiftRange); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config error: %s must be an integer: %w", EnvDateShiftRange, err)
		}
		cfg.DateShiftRange = n
	}

	if env := os.Getenv(EnvAppEnv); env != "" {
		dev := env == "development"
		cfg.DevMode = &dev
	} else if env := os.Getenv(EnvGoEnv); env != "" {
		dev := env == "development"
		cfg.DevMode = &dev
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed on '%s' constraint", jsonName(fe.StructField()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer file config over environment config.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Seed == "" {
		result.Seed = defaults.Seed
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.CandidateIndex == 0 {
		result.CandidateIndex = defaults.CandidateIndex
	}
	if result.DateShiftRange == 0 {
		result.DateShiftRange = defaults.DateShiftRange
	}
	if result.PreserveChronology == nil {
		result.PreserveChronology = defaults.PreserveChronology
	}
	if result.DevMode == nil {
		result.DevMode = defaults.DevMode
	}

	return result
}

// Options converts the configuration into pseudonymization options
func (c *Config) Options() pseudonym.Options {
	opts := pseudonym.DefaultOptions()
	opts.Seed = c.Seed
	opts.CandidateIndex = c.CandidateIndex
	if c.DateShiftRange > 0 {
		opts.DateShiftRange = c.DateShiftRange
	}
	if c.PreserveChronology != nil {
		opts.SkipChronologyShift = !*c.PreserveChronology
	}
	if c.DevMode != nil {
		opts.DevMode = *c.DevMode
	}
	return opts
}

// Level returns the configured log level, defaulting to info
func (c *Config) Level() logrus.Level {
	if c.LogLevel == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func jsonName(structField string) string {
	switch structField {
	case "CandidateIndex":
		return "candidate_index"
	case "DateShiftRange":
		return "date_shift_range"
	case "DatabaseURL":
		return "database_url"
	case "LogLevel":
		return "log_level"
	default:
		return strings.ToLower(structField)
	}
}
