package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-pseudonymizer/internal/db"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store an original profile in the database",
	RunE:  runImport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profile IDs",
	RunE:  runList,
}

var (
	importInputFile      string
	importSkipValidation bool
	profilesDatabaseURL  string
	listLimit            int
)

func init() {
	importCmd.Flags().StringVarP(&importInputFile, "in", "i", "", "Path to profile JSON (required)")
	importCmd.Flags().BoolVar(&importSkipValidation, "skip-validation", false, "Skip JSON schema validation of input")
	importCmd.Flags().StringVar(&profilesDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	_ = importCmd.MarkFlagRequired("in")

	listCmd.Flags().StringVar(&profilesDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	listCmd.Flags().IntVar(&listLimit, "limit", 100, "Maximum number of IDs to list")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
}

func connectDB(ctx context.Context) (*db.DB, error) {
	databaseURL := profilesDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL required (set DATABASE_URL environment variable or use --db-url flag)")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(importInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	profile, err := decodeProfile(data, importSkipValidation)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := database.InsertProfile(ctx, profile)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	ids, err := database.ListProfileIDs(ctx, listLimit)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
			return err
		}
	}
	return nil
}
