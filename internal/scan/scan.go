// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan drives the per-contact search loop and aggregates results.
package scan

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/epstein-in/internal/httputil"
	"github.com/pdiddy/epstein-in/internal/search"
	"github.com/pdiddy/epstein-in/pkg/types"
)

// DefaultInitialDelay is the starting backoff delay and pacing between contacts.
const DefaultInitialDelay = 250 * time.Millisecond

// Searcher searches the corpus for one name. *search.Client implements it.
type Searcher interface {
	Search(ctx context.Context, name string, b *httputil.Backoff) search.Outcome
}

// Failure records a contact whose search could not complete.
type Failure struct {
	Name string
	Err  string
}

// Outcome holds everything a run collected.
type Outcome struct {
	// Results has one entry per searched contact, in search order.
	Results []types.SearchResult

	// Total is the number of contacts the run set out to search.
	Total int

	// Interrupted is set when the context ended before every contact was
	// searched.
	Interrupted bool

	Failures []Failure
}

// Searched returns the number of contacts with a recorded result.
func (o Outcome) Searched() int { return len(o.Results) }

// Run searches each contact in order, one request at a time. The backoff
// delay starts at initialDelay and carries over between contacts; after
// each successful search except the last, Run waits the current delay.
//
// Cancelling ctx is the interruption boundary: the contact being searched
// is discarded, the loop stops, and the results gathered so far are
// returned with Interrupted set. A failed search is recorded as zero hits
// with an error and does not stop the loop.
func Run(ctx context.Context, s Searcher, contacts []types.Contact, initialDelay time.Duration, w io.Writer) Outcome {
	return run(ctx, s, contacts, httputil.NewBackoff(initialDelay, true), w)
}

func run(ctx context.Context, s Searcher, contacts []types.Contact, b *httputil.Backoff, w io.Writer) Outcome {
	out := Outcome{
		Results: make([]types.SearchResult, 0, len(contacts)),
		Total:   len(contacts),
	}

	for i, c := range contacts {
		if ctx.Err() != nil {
			out.Interrupted = true
			break
		}

		fmt.Fprintf(w, "  [%d/%d] %s", i+1, len(contacts), c.FullName)
		so := s.Search(ctx, c.FullName, b)
		if ctx.Err() != nil {
			fmt.Fprintln(w)
			out.Interrupted = true
			break
		}

		r := types.NewSearchResult(c)
		if so.Err != nil {
			r.Error = so.Err.Error()
			out.Failures = append(out.Failures, Failure{Name: c.FullName, Err: r.Error})
			fmt.Fprintf(w, " -> failed: %v\n", so.Err)
			out.Results = append(out.Results, r)
			continue
		}

		r.TotalMentions = so.TotalHits
		if so.Hits != nil {
			r.Hits = so.Hits
		}
		fmt.Fprintf(w, " -> %d hits\n", r.TotalMentions)
		out.Results = append(out.Results, r)

		if i < len(contacts)-1 {
			if err := b.Wait(ctx, b.Delay); err != nil {
				break
			}
		}
	}

	if out.Searched() < out.Total {
		out.Interrupted = true
	}
	return out
}
