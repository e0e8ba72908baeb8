// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contacts

import "github.com/pdiddy/epstein-in/pkg/types"

// Deduplicate drops contacts whose lower-cased full name was already seen,
// keeping the first occurrence and preserving order.
func Deduplicate(contacts []types.Contact) []types.Contact {
	seen := make(map[string]struct{}, len(contacts))
	unique := make([]types.Contact, 0, len(contacts))
	for _, c := range contacts {
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
