package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-pseudonymizer/internal/anonymize"
	"github.com/jonathan/resume-pseudonymizer/internal/observability"
	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Print anonymous document name, display name, seniority and e-mail for a profile",
	RunE:  runNames,
}

var (
	namesInputFile string
	namesID        string
	namesIndex     int
)

func init() {
	namesCmd.Flags().StringVarP(&namesInputFile, "in", "i", "", "Path to profile JSON (required)")
	namesCmd.Flags().StringVar(&namesID, "id", "", "Candidate ID (default: the profile's id)")
	namesCmd.Flags().IntVar(&namesIndex, "index", -1, "Candidate index; used for the display name when the profile has no position")

	_ = namesCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(namesCmd)
}

func runNames(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(namesInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	profile, err := decodeProfile(data, true)
	if err != nil {
		return err
	}

	id := namesID
	if id == "" {
		id = profile.ID
	}

	rows := nameRows(profile.Position, id, namesIndex, time.Now())
	observability.NewPrinter(cmd.OutOrStdout()).PrintKeyValues(rows)
	return nil
}

func nameRows(title, id string, index int, now time.Time) [][2]string {
	return [][2]string{
		{"Document", anonymize.DocumentName(title, id, now)},
		{"Display name", anonymize.DisplayName(title, id, index)},
		{"Seniority", anonymize.Seniority(title)},
		{"E-mail", anonymize.Email(id)},
	}
}
