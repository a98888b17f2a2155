package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/resume-pseudonymizer/internal/db"
	"github.com/jonathan/resume-pseudonymizer/internal/observability"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/spf13/cobra"
)

var pseudonymizeCmd = &cobra.Command{
	Use:   "pseudonymize",
	Short: "Pseudonymize a candidate profile",
	Long:  "Pseudonymize a candidate profile read from a JSON file or from the database. File mode writes the result JSON; database mode stores it alongside the original.",
	RunE:  runPseudonymize,
}

var (
	pseudoFlags       engineFlags
	pseudoInputFile   string
	pseudoOutputFile  string
	pseudoProfileID   string
	pseudoDatabaseURL string
	pseudoSummary     bool
)

func init() {
	pseudoFlags.register(pseudonymizeCmd)
	pseudonymizeCmd.Flags().StringVarP(&pseudoInputFile, "in", "i", "", "Path to input profile JSON")
	pseudonymizeCmd.Flags().StringVarP(&pseudoOutputFile, "out", "o", "", "Path to output result JSON (default stdout)")
	pseudonymizeCmd.Flags().StringVar(&pseudoProfileID, "profile-id", "", "Stored profile ID to pseudonymize")
	pseudonymizeCmd.Flags().StringVar(&pseudoDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	pseudonymizeCmd.Flags().BoolVar(&pseudoSummary, "summary", false, "Print a metadata summary to stderr")

	rootCmd.AddCommand(pseudonymizeCmd)
}

func runPseudonymize(cmd *cobra.Command, _ []string) error {
	// Determine mode: database or file
	useDatabase := pseudoProfileID != ""
	useFiles := pseudoInputFile != ""

	if useDatabase && useFiles {
		return fmt.Errorf("cannot use --profile-id with --in")
	}
	if !useDatabase && !useFiles {
		return fmt.Errorf("must provide either --in or --profile-id")
	}

	cfg, err := resolveConfig(cmd, &pseudoFlags)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cfg, os.Stderr)
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(os.Stderr)

	if useFiles {
		data, err := os.ReadFile(pseudoInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		profile, err := decodeProfile(data, pseudoFlags.skipValidation)
		if err != nil {
			return err
		}

		result := pseudonym.PseudonymizeProfile(profile, opts)
		if err := writeJSON(cmd.OutOrStdout(), pseudoOutputFile, result); err != nil {
			return err
		}

		if pseudoSummary {
			printer.PrintMetadata(&result.Metadata)
		}
		if pseudoOutputFile != "" {
			_, _ = fmt.Fprintf(os.Stdout, "Successfully pseudonymized profile\n")
			_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", pseudoOutputFile)
		}
		return nil
	}

	// Database mode
	profileID, err := uuid.Parse(pseudoProfileID)
	if err != nil {
		return fmt.Errorf("invalid profile-id: %w", err)
	}

	databaseURL := pseudoDatabaseURL
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL required when using --profile-id")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	stored, err := database.GetProfile(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("profile not found: %s", profileID)
	}

	result := pseudonym.PseudonymizeProfile(&stored.Profile, opts)
	recordID, err := database.SavePseudonymizedProfile(ctx, profileID, opts.CandidateIndex, &result)
	if err != nil {
		return err
	}

	if pseudoSummary {
		printer.PrintMetadata(&result.Metadata)
	}
	if pseudoOutputFile != "" {
		if err := writeJSON(cmd.OutOrStdout(), pseudoOutputFile, result); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully pseudonymized profile and saved to database (profile: %s, record: %s)\n", profileID, recordID)

	return nil
}
