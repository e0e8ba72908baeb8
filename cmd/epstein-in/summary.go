// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pdiddy/epstein-in/internal/scan"
)

const (
	topMentions   = 20
	shownFailures = 10
)

// printSummary writes the end-of-run totals, the top mentions, and any
// failed searches. Styling is dropped when w is not a terminal.
func printSummary(w io.Writer, out scan.Outcome) {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	count := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("11"))
	p := message.NewPrinter(language.English)

	s := scan.Summarize(out.Results)
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, heading.Render("SUMMARY"), rule)
	fmt.Fprintf(w, "Total contacts searched: %d\n", s.Searched)
	if out.Interrupted {
		fmt.Fprintf(w, "Partial run: %d of %d contacts searched\n", out.Searched(), out.Total)
	}
	fmt.Fprintf(w, "Contacts with mentions: %d\n", s.WithMentions)

	mentioned := scan.WithMentions(out.Results)
	if len(mentioned) == 0 {
		fmt.Fprintln(w, "\nNo contacts found in the Epstein files.")
	} else {
		fmt.Fprintf(w, "\n%s\n", heading.Render("Top mentions:"))
		for _, res := range mentioned[:min(topMentions, len(mentioned))] {
			fmt.Fprintf(w, "  %s - %s\n", count.Render(p.Sprintf("%6d", res.TotalMentions)), res.Name)
		}
	}

	if len(out.Failures) > 0 {
		fmt.Fprintf(w, "\n%s\n", warn.Render(fmt.Sprintf("Searches that failed (%d):", len(out.Failures))))
		for _, f := range out.Failures[:min(shownFailures, len(out.Failures))] {
			fmt.Fprintf(w, "  %s: %s\n", f.Name, f.Err)
		}
		if rest := len(out.Failures) - shownFailures; rest > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", rest)
		}
	}
}
