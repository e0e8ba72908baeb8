// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xapi resolves X (Twitter) account IDs to contacts through the
// X API v2 users lookup endpoint.
package xapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/epstein-in/internal/httputil"
	"github.com/pdiddy/epstein-in/pkg/types"
)

// DefaultEndpoint is the X API v2 users lookup URL.
const DefaultEndpoint = "https://api.x.com/2/users"

// MaxBatchSize is the most IDs the lookup endpoint accepts per request.
const MaxBatchSize = 100

const defaultInitialDelay = 1 * time.Second

var (
	// ErrUnauthorized is returned when the API rejects the bearer token (HTTP 401).
	ErrUnauthorized = errors.New("X API authentication failed: check your bearer token")

	// ErrForbidden is returned when the token lacks access (HTTP 403).
	ErrForbidden = errors.New("X API access forbidden: your bearer token may lack the required permissions")
)

// Client looks up X users by ID.
type Client struct {
	HTTP *http.Client
	Cfg  types.LookupConfig

	// Sleep overrides the backoff wait. Nil sleeps for real.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Resolution is the outcome of resolving a list of account IDs.
type Resolution struct {
	Contacts []types.Contact

	// Warnings holds per-account errors reported by the API, such as
	// suspended or deleted accounts.
	Warnings []string
}

// Resolve turns account IDs into contacts, in batches of at most
// MaxBatchSize. The user's display name is split into a first name (first
// token) and last name (the rest); the handle becomes the position as
// "@handle". Users without a name are skipped.
//
// Rate-limited batches are retried after a wait. Authentication and
// authorization failures return ErrUnauthorized or ErrForbidden; any other
// failure aborts resolution. Per-account API errors are written to w as
// warnings and collected in the Resolution.
func (c *Client) Resolve(ctx context.Context, ids []string, w io.Writer) (Resolution, error) {
	res := Resolution{Contacts: []types.Contact{}}

	size := c.Cfg.BatchSize
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}

	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))

		lr, err := c.lookup(ctx, ids[start:end])
		if err != nil {
			return res, err
		}

		for _, e := range lr.Errors {
			detail := e.Detail
			if detail == "" {
				detail = "unknown error for account"
			}
			fmt.Fprintf(w, "  warning: %s\n", detail)
			res.Warnings = append(res.Warnings, detail)
		}

		for _, u := range lr.Data {
			if contact, ok := userContact(u); ok {
				res.Contacts = append(res.Contacts, contact)
			}
		}
	}
	return res, nil
}

// lookup fetches one batch, retrying on HTTP 429.
func (c *Client) lookup(ctx context.Context, batch []string) (*lookupResponse, error) {
	endpoint := c.Cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	reqURL := endpoint + "?" + url.Values{"ids": {strings.Join(batch, ",")}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Cfg.BearerToken)
	if c.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.Cfg.UserAgent)
	}

	delay := c.Cfg.InitialDelay
	if delay <= 0 {
		delay = defaultInitialDelay
	}
	b := httputil.NewBackoff(delay, false)
	b.Sleep = c.Sleep

	slog.Debug("looking up X users", "count", len(batch))
	resp, err := httputil.DoWithBackoff(ctx, c.HTTP, req, b)
	if err != nil {
		return nil, fmt.Errorf("X API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("X API returned HTTP %d", resp.StatusCode)
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("parsing X API response: %w", err)
	}
	return &lr, nil
}

// userContact converts a looked-up user into a contact.
func userContact(u lookupUser) (types.Contact, bool) {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return types.Contact{}, false
	}

	first, last := name, ""
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		first = name[:i]
		last = strings.TrimSpace(name[i:])
	}

	var position string
	if u.Username != "" {
		position = "@" + u.Username
	}

	return types.Contact{
		FirstName: first,
		LastName:  last,
		FullName:  name,
		Position:  position,
	}, true
}

// X API v2 users lookup JSON structures.
type lookupResponse struct {
	Data   []lookupUser  `json:"data"`
	Errors []lookupError `json:"errors"`
}

type lookupUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type lookupError struct {
	Value  string `json:"value"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}
