package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-pseudonymizer/internal/config"
	"github.com/jonathan/resume-pseudonymizer/internal/observability"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/jonathan/resume-pseudonymizer/internal/schemas"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// engineFlags are the pseudonymization flags shared by pseudonymize and batch
type engineFlags struct {
	configPath     string
	seed           string
	index          int
	dateRange      int
	noChronology   bool
	dev            bool
	skipValidation bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to JSON config file")
	cmd.Flags().StringVar(&f.seed, "seed", "", "Seed for reproducible output (overrides PSEUDONYMIZER_SEED)")
	cmd.Flags().IntVar(&f.index, "index", 0, "Candidate index for the sequential label (0 = A)")
	cmd.Flags().IntVar(&f.dateRange, "range", 0, "Date shift range in months (default 2)")
	cmd.Flags().BoolVar(&f.noChronology, "no-chronology", false, "Do not shift work dates")
	cmd.Flags().BoolVar(&f.dev, "dev", false, "Print a before/after trace to stderr (contains original data)")
	cmd.Flags().BoolVar(&f.skipValidation, "skip-validation", false, "Skip JSON schema validation of input")
}

// resolveConfig layers flags over the config file over the environment and
// applies the resolved log level
func resolveConfig(cmd *cobra.Command, f *engineFlags) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	if f.configPath != "" {
		fileCfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("index") {
		cfg.CandidateIndex = f.index
	}
	if flags.Changed("range") {
		cfg.DateShiftRange = f.dateRange
	}
	if flags.Changed("no-chronology") {
		preserve := !f.noChronology
		cfg.PreserveChronology = &preserve
	}
	if flags.Changed("dev") {
		dev := f.dev
		cfg.DevMode = &dev
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// --log-level already applied in PersistentPreRunE and wins over config.
	if !flags.Changed("log-level") {
		logrus.SetLevel(cfg.Level())
	}
	return cfg, nil
}

// engineOptions converts resolved config into validated engine options
func engineOptions(cfg *config.Config, traceOut io.Writer) (pseudonym.Options, error) {
	opts := cfg.Options()
	if err := opts.Validate(); err != nil {
		return opts, err
	}

	opts.Logger = logrus.StandardLogger()
	if opts.DevMode {
		opts.Trace = observability.NewPrinter(traceOut)
	}
	return opts, nil
}

// decodeProfile validates a profile document and unmarshals it
func decodeProfile(data []byte, skipValidation bool) (*types.Profile, error) {
	if !skipValidation {
		if err := validateDocument(data); err != nil {
			return nil, err
		}
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// decodeProfiles validates and unmarshals a JSON array of profiles
func decodeProfiles(data []byte, skipValidation bool) ([]types.Profile, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profiles JSON array: %w", err)
	}

	profiles := make([]types.Profile, 0, len(raw))
	for i, doc := range raw {
		profile, err := decodeProfile(doc, skipValidation)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// validateDocument checks a profile document against the embedded schema.
// Schema loading problems are logged and do not block processing.
func validateDocument(data []byte) error {
	err := schemas.ValidateProfile(data)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("input does not validate against profile schema: %w", err)
	case errors.As(err, &schemaLoadErr):
		logrus.WithError(err).Warn("could not validate input against schema")
		return nil
	default:
		logrus.WithError(err).Warn("could not validate input")
		return nil
	}
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(w, string(jsonBytes))
		return err
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
