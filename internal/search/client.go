// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the document-corpus search API for exact-phrase
// mentions of a name.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/epstein-in/internal/httputil"
	"github.com/pdiddy/epstein-in/pkg/types"
)

// Defaults for the public corpus search API.
const (
	DefaultEndpoint = "https://analytics.dugganusa.com/api/v1/search"
	DefaultIndex    = "epstein_files"
)

// Outcome is the result of one name search. Err is set when the search
// failed; TotalHits is then zero.
type Outcome struct {
	TotalHits int
	Hits      []types.Hit
	Err       error
}

// Client searches the corpus, one exact-phrase query per call.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig
}

// Search queries the API for name as a quoted phrase. Rate-limited
// requests are retried with b, whose delay the caller keeps across
// searches. A response whose body reports success=false, or lacks data,
// counts as zero hits without error. Any other failure is returned in
// Outcome.Err.
func (c *Client) Search(ctx context.Context, name string, b *httputil.Backoff) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.QueryURL(name), nil)
	if err != nil {
		return Outcome{Hits: []types.Hit{}, Err: fmt.Errorf("creating request: %w", err)}
	}
	if c.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.Cfg.UserAgent)
	}

	resp, err := httputil.DoWithBackoff(ctx, c.HTTP, req, b)
	if err != nil {
		return Outcome{Hits: []types.Hit{}, Err: fmt.Errorf("search API request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{Hits: []types.Hit{}, Err: fmt.Errorf("search API returned HTTP %d", resp.StatusCode)}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Outcome{Hits: []types.Hit{}, Err: fmt.Errorf("parsing search response: %w", err)}
	}

	if !sr.Success || sr.Data == nil {
		slog.Debug("search reported no success", "name", name)
		return Outcome{Hits: []types.Hit{}}
	}

	hits := sr.Data.Hits
	if hits == nil {
		hits = []types.Hit{}
	}
	total := sr.Data.TotalHits
	if total < 0 {
		total = 0
	}
	return Outcome{TotalHits: total, Hits: hits}
}

// QueryURL returns the request URL for an exact-phrase search of name.
func (c *Client) QueryURL(name string) string {
	endpoint := c.Cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	index := c.Cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	return endpoint + "?q=" + quotePhrase(name) + "&indexes=" + url.QueryEscape(index)
}

// quotePhrase wraps name in double quotes and percent-encodes it, with
// spaces as %20.
func quotePhrase(name string) string {
	return strings.ReplaceAll(url.QueryEscape(`"`+name+`"`), "+", "%20")
}

// Search API JSON structures.
type searchResponse struct {
	Success bool        `json:"success"`
	Data    *searchData `json:"data"`
}

type searchData struct {
	TotalHits int         `json:"totalHits"`
	Hits      []types.Hit `json:"hits"`
}
