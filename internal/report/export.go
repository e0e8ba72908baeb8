// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/epstein-in/pkg/types"
)

// ExportFile is the YAML form of a run: a summary block followed by every
// searched contact's result, including those with no mentions.
type ExportFile struct {
	Summary ExportSummary        `yaml:"summary"`
	Results []types.SearchResult `yaml:"results"`
}

// ExportSummary stores run statistics and a timestamp.
type ExportSummary struct {
	Searched     int       `yaml:"searched"`
	Total        int       `yaml:"total"`
	WithMentions int       `yaml:"with_mentions"`
	TotalHits    int       `yaml:"total_hits"`
	Failed       int       `yaml:"failed"`
	Partial      bool      `yaml:"partial"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// NewExport builds the export view of d.
func NewExport(d Data) ExportFile {
	summary, total := totals(d)
	ts := d.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	results := d.Results
	if results == nil {
		results = []types.SearchResult{}
	}
	return ExportFile{
		Summary: ExportSummary{
			Searched:     summary.Searched,
			Total:        total,
			WithMentions: summary.WithMentions,
			TotalHits:    summary.TotalHits,
			Failed:       summary.Failed,
			Partial:      d.Interrupted,
			Timestamp:    ts,
		},
		Results: results,
	}
}

// EncodeYAML writes the export of d to w.
func EncodeYAML(w io.Writer, d Data) error {
	ef := NewExport(d)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&ef); err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return enc.Close()
}

// WriteYAML writes the export of d to path, replacing it atomically.
func WriteYAML(path string, d Data) error {
	return writeAtomic(path, func(w io.Writer) error { return EncodeYAML(w, d) })
}
