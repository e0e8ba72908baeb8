// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the epstein-in pipeline:
// normalized contacts, per-contact search results, and stage configuration.
package types

import "strings"

// Contact is a person record normalized from either a LinkedIn connections
// export or an X following export. FullName is never empty for a contact
// that survives parsing.
type Contact struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	FullName  string `json:"full_name" yaml:"full_name"`
	Company   string `json:"company" yaml:"company"`
	Position  string `json:"position" yaml:"position"`
}

// Key returns the identity used for deduplication: the lower-cased full name.
func (c Contact) Key() string {
	return strings.ToLower(c.FullName)
}
