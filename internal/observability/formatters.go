// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/dashboard"
	"github.com/jonathan/vettedge/internal/provider"
	"github.com/jonathan/vettedge/internal/schemas"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintFixture outputs each role with its candidate count and average score.
func (p *Printer) PrintFixture(f *provider.Fixture) {
	if f == nil {
		return
	}

	var sb strings.Builder
	total := 0
	for _, r := range f.Roles {
		list := f.Candidates[r.ID]
		total += len(list)
		sb.WriteString(fmt.Sprintf("%-28s %4d  avg %5.1f\n", truncate(r.Name, 28), len(list), dashboard.AverageScore(list)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d roles, %d candidates", len(f.Roles), total))

	p.printBox("FIXTURE SUMMARY", sb.String())
}

// PrintTable outputs the first rows of a projected candidate table.
func (p *Printer) PrintTable(role string, rows []candidates.Candidate) {
	if len(rows) == 0 {
		p.printBox("CANDIDATES: "+role, "No candidates found.")
		return
	}

	var sb strings.Builder
	count := min(len(rows), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := rows[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, c.Name))
		sb.WriteString(fmt.Sprintf("    Score: %d (%s)\n", c.Score, candidates.Classify(c.Score)))
		if len(c.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(c.Skills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(rows) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(rows)-maxItemsToShow))
	}

	p.printBox("CANDIDATES: "+role, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSchemaErrors outputs fixture schema violations.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSchemaErrors(vErr *schemas.ValidationError) {
	if vErr == nil || len(vErr.Errors) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SCHEMA VIOLATIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(vErr.Errors)))
	for i, fe := range vErr.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", fe.Message))
		if i < len(vErr.Errors)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCHEMA VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
