// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
)

// DefaultDocumentsBaseURL hosts the public documents that hit file paths
// refer to.
const DefaultDocumentsBaseURL = "https://www.justice.gov/epstein/files/"

// DocumentPath applies the host's directory casing to a corpus file path.
func DocumentPath(filePath string) string {
	return strings.ReplaceAll(filePath, "dataset", "DataSet")
}

// DocumentURL builds the public link for a hit's file path. It returns ""
// when filePath is empty.
func DocumentURL(baseURL, filePath string) string {
	if filePath == "" {
		return ""
	}
	if baseURL == "" {
		baseURL = DefaultDocumentsBaseURL
	}
	p := DocumentPath(filePath)
	return strings.TrimRight(baseURL, "/") + "/" + escapePath(strings.TrimLeft(p, "/"))
}

// escapePath percent-encodes everything except unreserved characters and
// the path separator.
func escapePath(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
