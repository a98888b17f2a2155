// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxColWidth caps table cells in trace output
	maxColWidth = 40
)

// Printer handles formatted output. It is safe for concurrent use and
// implements pseudonym.TraceSink.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

var _ pseudonym.TraceSink = (*Printer)(nil)

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content.
// Callers must hold p.mu.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Trace prints a dev-mode before/after table
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Trace(t pseudonym.Trace) {
	p.mu.Lock()
	defer p.mu.Unlock()

	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.AddRow(headerfmt("FIELD"), headerfmt("ORIGINAL"), headerfmt("PSEUDONYMIZED"))
	for _, e := range t.Entries {
		table.AddRow(e.Field, e.Original, e.Pseudonymized)
	}

	fmt.Fprintln(p.out, color.YellowString("PSEUDONYMIZATION TRACE (development only)"))
	fmt.Fprintln(p.out, table.String())
	if len(t.TransformationsApplied) > 0 {
		fmt.Fprintf(p.out, "Transformations: %s\n", strings.Join(t.TransformationsApplied, "; "))
	}
	if len(t.OriginalDataDetected) > 0 {
		fmt.Fprintf(p.out, "Detected: %s\n", strings.Join(t.OriginalDataDetected, ", "))
	}
}

// PrintMetadata outputs a summary box of a pseudonymization result's metadata
func (p *Printer) PrintMetadata(meta *types.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Timestamp: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05 MST")))
	if meta.SeedUsed != "" {
		sb.WriteString(fmt.Sprintf("Seed:      %s\n", meta.SeedUsed))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Detected (%d):\n", len(meta.OriginalDataDetected)))
	for _, f := range meta.OriginalDataDetected {
		sb.WriteString(fmt.Sprintf("  • %s\n", f))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Transformations (%d):\n", len(meta.TransformationsApplied)))
	for _, tr := range meta.TransformationsApplied {
		sb.WriteString(fmt.Sprintf("  • %s\n", tr))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.printBox("PSEUDONYMIZATION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPIICheck reports whether a record carries direct identifiers
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPIICheck(source string, hasPII bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if hasPII {
		fmt.Fprintf(p.out, "%s %s\n", color.RedString("PII DETECTED"), source)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", color.GreenString("NO PII"), source)
}

// PrintKeyValues prints aligned label/value rows
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintKeyValues(rows [][2]string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	table := uitable.New()
	for _, r := range rows {
		table.AddRow(r[0]+":", r[1])
	}
	fmt.Fprintln(p.out, table.String())
}
