// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FollowingPrefix is the JavaScript assignment that opens an X data-export
// following.js file. The JSON array follows it.
const FollowingPrefix = "window.YTD.following.part0 = "

// ErrFollowingFormat reports a following.js file that is not an X export.
var ErrFollowingFormat = errors.New("not an X following.js export")

type followingEntry struct {
	Following struct {
		AccountID string `json:"accountId"`
	} `json:"following"`
}

// ParseFollowingFile opens path and parses it with ParseFollowing.
func ParseFollowingFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening following file: %w", err)
	}
	defer f.Close()

	ids, err := ParseFollowing(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ids, nil
}

// ParseFollowing extracts followed account IDs from an X following.js
// export, in file order. Entries without an account ID are skipped and
// duplicates are kept. Input that does not start with FollowingPrefix or
// whose JSON cannot be decoded wraps ErrFollowingFormat.
func ParseFollowing(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading following export: %w", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, FollowingPrefix) {
		return nil, fmt.Errorf("%w: expected file to start with %q", ErrFollowingFormat, FollowingPrefix)
	}

	var entries []followingEntry
	if err := json.Unmarshal([]byte(content[len(FollowingPrefix):]), &entries); err != nil {
		return nil, fmt.Errorf("%w: decoding JSON: %v", ErrFollowingFormat, err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Following.AccountID != "" {
			ids = append(ids, e.Following.AccountID)
		}
	}
	return ids, nil
}
