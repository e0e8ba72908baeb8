// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// previewRunes is the number of runes of raw content used as a preview
// when the search API supplies no explicit preview.
const previewRunes = 500

// Hit is one matching document returned by the search API for a query.
// Fields are taken verbatim from the API response.
type Hit struct {
	// ContentPreview is the API-supplied excerpt, if any.
	ContentPreview string `json:"content_preview,omitempty" yaml:"content_preview,omitempty"`

	// Content is the full extracted document text, if any.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// FilePath is the corpus-relative path of the source document.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
}

// Preview returns the text shown for the hit: the explicit preview when
// present, otherwise the first 500 runes of Content.
func (h Hit) Preview() string {
	if h.ContentPreview != "" {
		return h.ContentPreview
	}
	r := []rune(h.Content)
	if len(r) > previewRunes {
		return string(r[:previewRunes])
	}
	return h.Content
}

// SearchResult holds the outcome of searching the corpus for one contact.
type SearchResult struct {
	// Name is the contact's full name, the exact phrase that was searched.
	Name string `json:"name" yaml:"name"`

	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Company   string `json:"company" yaml:"company"`
	Position  string `json:"position" yaml:"position"`

	// TotalMentions is the API's total hit count for the query. Zero on
	// any search failure.
	TotalMentions int `json:"total_mentions" yaml:"total_mentions"`

	// Hits lists the hit details returned with the count. It may be empty
	// even when TotalMentions is positive.
	Hits []Hit `json:"hits" yaml:"hits"`

	// Error is the failure text when the search could not complete. An
	// empty Error with zero mentions means the search succeeded and found
	// nothing.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewSearchResult builds a result for c with no hits.
func NewSearchResult(c Contact) SearchResult {
	return SearchResult{
		Name:      c.FullName,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Position:  c.Position,
		Hits:      []Hit{},
	}
}
