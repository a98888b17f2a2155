package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Pseudonymize a JSON array of profiles",
	Long:  "Pseudonymize every profile in a JSON array. Profiles are labeled A, B, C... by position; --index is ignored.",
	RunE:  runBatch,
}

var (
	batchFlags      engineFlags
	batchInputFile  string
	batchOutputFile string
)

func init() {
	batchFlags.register(batchCmd)
	batchCmd.Flags().StringVarP(&batchInputFile, "in", "i", "", "Path to input JSON array of profiles (required)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Path to output JSON array of results (default stdout)")

	_ = batchCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &batchFlags)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cfg, os.Stderr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(batchInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	profiles, err := decodeProfiles(data, batchFlags.skipValidation)
	if err != nil {
		return err
	}

	results := pseudonym.PseudonymizeMultipleProfiles(profiles, opts)
	if err := writeJSON(cmd.OutOrStdout(), batchOutputFile, results); err != nil {
		return err
	}

	if batchOutputFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully pseudonymized %d profiles\n", len(results))
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", batchOutputFile)
	}
	return nil
}
