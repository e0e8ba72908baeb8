// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"sort"

	"github.com/pdiddy/epstein-in/pkg/types"
)

// SortByMentions orders results by TotalMentions, highest first. Ties keep
// their search order.
func SortByMentions(results []types.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalMentions > results[j].TotalMentions
	})
}

// Summary holds run-level counts for the report and console output.
type Summary struct {
	Searched     int
	WithMentions int
	TotalHits    int
	Failed       int
}

// Summarize counts results. Zero-mention contacts count as searched.
func Summarize(results []types.SearchResult) Summary {
	var s Summary
	for _, r := range results {
		s.Searched++
		s.TotalHits += r.TotalMentions
		if r.TotalMentions > 0 {
			s.WithMentions++
		}
		if r.Error != "" {
			s.Failed++
		}
	}
	return s
}

// WithMentions returns the leading results that have at least one mention.
// results must already be sorted by SortByMentions.
func WithMentions(results []types.SearchResult) []types.SearchResult {
	for i, r := range results {
		if r.TotalMentions <= 0 {
			return results[:i]
		}
	}
	return results
}
