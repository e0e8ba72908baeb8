// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders search results as a self-contained HTML page and
// as a YAML export.
package report

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pdiddy/epstein-in/internal/scan"
	"github.com/pdiddy/epstein-in/pkg/types"
)

// DefaultVisibleHits is how many hits per contact are shown before the
// "show more" toggle.
const DefaultVisibleHits = 3

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

var numbers = message.NewPrinter(language.English)

// Data is the input to Render.
type Data struct {
	// Results must be sorted with scan.SortByMentions.
	Results []types.SearchResult

	// Total is the number of contacts the run set out to search.
	Total int

	// Interrupted marks a partial report.
	Interrupted bool

	GeneratedAt time.Time
	Config      types.ReportConfig
}

// page is the template view of Data.
type page struct {
	Summary     scan.Summary
	Total       int
	Interrupted bool
	GeneratedAt string
	TotalHits   string
	Cards       []card
}

type card struct {
	Name     string
	Info     string
	Badge    string
	Search   string
	Visible  []hit
	Hidden   []hit
	NoDetail bool
}

type hit struct {
	Preview template.HTML
	URL     string
	Path    string
}

// Render writes the HTML report for d to w. Only contacts with at least
// one mention get a card; every searched contact counts in the summary.
func Render(w io.Writer, d Data) error {
	if err := pageTemplate.Execute(w, buildPage(d)); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, replacing it atomically.
func WriteFile(path string, d Data) error {
	return writeAtomic(path, func(w io.Writer) error { return Render(w, d) })
}

func buildPage(d Data) page {
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = time.Now()
	}
	visible := d.Config.VisibleHits
	if visible <= 0 {
		visible = DefaultVisibleHits
	}

	summary, total := totals(d)
	p := page{
		Summary:     summary,
		Total:       total,
		Interrupted: d.Interrupted,
		GeneratedAt: d.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		TotalHits:   numbers.Sprintf("%d", summary.TotalHits),
	}

	for _, r := range scan.WithMentions(d.Results) {
		p.Cards = append(p.Cards, buildCard(r, visible, d.Config.DocumentsBaseURL))
	}
	return p
}

// totals summarizes d's results. The planned total is never smaller than
// the number searched.
func totals(d Data) (scan.Summary, int) {
	summary := scan.Summarize(d.Results)
	return summary, max(d.Total, summary.Searched)
}

func buildCard(r types.SearchResult, visible int, baseURL string) card {
	c := card{
		Name:     r.Name,
		Info:     contactInfo(r.Position, r.Company),
		Badge:    numbers.Sprintf("%d mentions", r.TotalMentions),
		Search:   strings.ToLower(strings.Join([]string{r.Name, r.Position, r.Company}, " ")),
		NoDetail: len(r.Hits) == 0,
	}

	full := html.EscapeString(r.Name)
	first := html.EscapeString(r.FirstName)
	last := html.EscapeString(r.LastName)

	for i, h := range r.Hits {
		v := hit{
			Preview: template.HTML(Highlight(html.EscapeString(h.Preview()), full, first, last)),
			URL:     DocumentURL(baseURL, h.FilePath),
		}
		if h.FilePath != "" {
			v.Path = DocumentPath(h.FilePath)
		}
		if i < visible {
			c.Visible = append(c.Visible, v)
		} else {
			c.Hidden = append(c.Hidden, v)
		}
	}
	return c
}

// contactInfo formats "position at company", omitting empty parts.
func contactInfo(position, company string) string {
	var parts []string
	if position != "" {
		parts = append(parts, position)
	}
	if company != "" {
		parts = append(parts, company)
	}
	return strings.Join(parts, " at ")
}

// writeAtomic writes through a temp file in the target directory and
// renames it over path on success.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writeErr := write(tmp)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
