package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-pseudonymizer/internal/observability"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/spf13/cobra"
)

var checkPIICmd = &cobra.Command{
	Use:   "check-pii",
	Short: "Report whether JSON records carry direct identifiers",
	Long:  "Check a JSON object, or each object of a JSON array, for non-empty name, email, phone or address keys.",
	RunE:  runCheckPII,
}

var (
	checkPIIInputFile string
	checkPIIFail      bool
)

func init() {
	checkPIICmd.Flags().StringVarP(&checkPIIInputFile, "in", "i", "", "Path to JSON record or array (required)")
	checkPIICmd.Flags().BoolVar(&checkPIIFail, "fail", false, "Exit with an error when any record carries PII")

	_ = checkPIICmd.MarkFlagRequired("in")

	rootCmd.AddCommand(checkPIICmd)
}

func runCheckPII(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(checkPIIInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	findings := scanPII(doc)
	printer := observability.NewPrinter(cmd.OutOrStdout())
	found := 0
	for _, f := range findings {
		label := checkPIIInputFile
		if len(findings) > 1 {
			label = fmt.Sprintf("%s[%d]", checkPIIInputFile, f.index)
		}
		printer.PrintPIICheck(label, f.hasPII)
		if f.hasPII {
			found++
		}
	}

	if checkPIIFail && found > 0 {
		return fmt.Errorf("%d of %d records contain PII", found, len(findings))
	}
	return nil
}

type piiFinding struct {
	index  int
	hasPII bool
}

// scanPII checks an object or each element of an array. Non-object values carry no PII.
func scanPII(doc any) []piiFinding {
	check := func(v any) bool {
		record, ok := v.(map[string]any)
		return ok && pseudonym.ContainsPII(record)
	}

	if items, ok := doc.([]any); ok {
		findings := make([]piiFinding, len(items))
		for i, item := range items {
			findings[i] = piiFinding{index: i, hasPII: check(item)}
		}
		return findings
	}
	return []piiFinding{{index: 0, hasPII: check(doc)}}
}
