// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	markOpen  = `<mark class="highlight">`
	markClose = `</mark>`

	// minPartRunes is the shortest first or last name highlighted on its own.
	minPartRunes = 2
)

// entityPattern matches a character reference in escaped text.
var entityPattern = regexp.MustCompile(`&(#\d+|#x[0-9a-fA-F]+|[a-zA-Z]+);`)

type span struct{ start, end int }

func (s span) overlaps(o span) bool { return s.start < o.end && o.start < s.end }

// Highlight wraps occurrences of a contact's name in text with <mark>
// elements. text and the three names must already be HTML-escaped, so
// offsets refer to the same escaped form.
//
// Matching is case-insensitive and applied in order: the full name as a
// phrase, then the last name and the first name as whole words (only when
// at least two characters long). A later match that overlaps an earlier
// one is skipped, so highlights never nest. Matches inside character
// references such as &amp; are skipped too.
func Highlight(text, fullName, firstName, lastName string) string {
	entities := entitySpans(text)

	var spans []span
	spans = addMatches(spans, entities, text, fullName, false)
	if utf8.RuneCountInString(lastName) >= minPartRunes {
		spans = addMatches(spans, entities, text, lastName, true)
	}
	if utf8.RuneCountInString(firstName) >= minPartRunes {
		spans = addMatches(spans, entities, text, firstName, true)
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(markOpen)+len(markClose)))
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.start])
		b.WriteString(markOpen)
		b.WriteString(text[s.start:s.end])
		b.WriteString(markClose)
		prev = s.end
	}
	b.WriteString(text[prev:])
	return b.String()
}

// entitySpans returns the byte ranges of character references in text.
func entitySpans(text string) []span {
	var out []span
	for _, loc := range entityPattern.FindAllStringIndex(text, -1) {
		out = append(out, span{start: loc[0], end: loc[1]})
	}
	return out
}

// addMatches appends every case-insensitive occurrence of pattern in text
// that neither overlaps an existing span nor cuts through a blocked one. With
// wordBounded set, matches must not touch a letter, digit, or underscore
// on either side.
func addMatches(spans, blocked []span, text, pattern string, wordBounded bool) []span {
	if strings.TrimSpace(pattern) == "" {
		return spans
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	existing := len(spans)

	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		s := span{start: pos + loc[0], end: pos + loc[1]}

		if (!wordBounded || isWordBounded(text, s)) && !overlapsAny(spans[:existing], s) && !splitsAny(blocked, s) {
			spans = append(spans, s)
			pos = s.end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[s.start:])
		pos = s.start + size
	}
	return spans
}

func overlapsAny(spans []span, s span) bool {
	for _, o := range spans {
		if o.overlaps(s) {
			return true
		}
	}
	return false
}

// splitsAny reports whether s covers part, but not all, of any blocked span.
func splitsAny(blocked []span, s span) bool {
	for _, b := range blocked {
		if b.overlaps(s) && (b.start < s.start || b.end > s.end) {
			return true
		}
	}
	return false
}

func isWordBounded(text string, s span) bool {
	if s.start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:s.start])
		if isWordRune(r) {
			return false
		}
	}
	if s.end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[s.end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
