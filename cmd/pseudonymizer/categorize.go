package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/spf13/cobra"
)

var categorizeCmd = &cobra.Command{
	Use:       "categorize company|institution|region <text>",
	Short:     "Print the generalized label for a company, institution or place",
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"company", "institution", "region"},
	RunE:      runCategorize,
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	label, err := categorize(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), label)
	return err
}

func categorize(kind, text string) (string, error) {
	switch kind {
	case "company":
		return pseudonym.CategorizeCompany(text), nil
	case "institution":
		return pseudonym.CategorizeInstitution(text), nil
	case "region":
		return pseudonym.ResolveRegion(text), nil
	default:
		return "", fmt.Errorf("unknown category %q: must be company, institution or region", kind)
	}
}
