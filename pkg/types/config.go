// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "epstein-in/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the corpus search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the search API URL, without query string.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Index is the value passed as the indexes query parameter.
	Index string `json:"index" yaml:"index"`

	// InitialDelay is the starting backoff delay. It is also the pacing
	// between consecutive contacts until a rate limit changes it.
	InitialDelay time.Duration `json:"initial_delay" yaml:"initial_delay"`
}

// LookupConfig holds settings for resolving X account IDs to names.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the users lookup URL, without query string.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// BearerToken authenticates lookup requests.
	BearerToken string `json:"-" yaml:"-"`

	// BatchSize is the maximum number of IDs per request (API maximum 100).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// InitialDelay is the first backoff wait for a rate-limited batch.
	InitialDelay time.Duration `json:"initial_delay" yaml:"initial_delay"`
}

// ReportConfig holds settings for the HTML report.
type ReportConfig struct {
	// DocumentsBaseURL is prefixed to hit file paths to build document links.
	DocumentsBaseURL string `json:"documents_base_url" yaml:"documents_base_url"`

	// VisibleHits is the number of hits per contact shown before the
	// "show more" toggle.
	VisibleHits int `json:"visible_hits" yaml:"visible_hits"`
}
