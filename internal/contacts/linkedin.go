// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contacts normalizes contact exports into types.Contact records.
// It reads LinkedIn connection CSV exports and X following.js exports, and
// deduplicates the combined list by name.
package contacts

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/epstein-in/pkg/types"
)

// LinkedIn export column names.
const (
	colFirstName = "First Name"
	colLastName  = "Last Name"
	colCompany   = "Company"
	colPosition  = "Position"
)

// ParseConnectionsFile opens path and parses it with ParseConnections.
func ParseConnectionsFile(path string) ([]types.Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening connections file: %w", err)
	}
	defer f.Close()

	contacts, err := ParseConnections(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return contacts, nil
}

// ParseConnections reads a LinkedIn connections CSV export.
//
// LinkedIn prefixes the table with a free-text "Notes" preamble, so lines
// are skipped until one naming both the First Name and Last Name columns.
// A missing header yields no contacts and no error. Rows lacking a first or
// last name are dropped. Anything after the first comma of a last name
// (credentials such as ", PhD") is removed.
func ParseConnections(r io.Reader) ([]types.Contact, error) {
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	header, err := findHeader(br)
	if err != nil {
		return nil, err
	}
	if header == "" {
		return []types.Contact{}, nil
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	cols, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		name := strings.TrimSpace(c)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	contacts := []types.Contact{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		first := strings.TrimSpace(field(row, colFirstName))
		last := StripCredentials(strings.TrimSpace(field(row, colLastName)))
		if first == "" || last == "" {
			continue
		}

		contacts = append(contacts, types.Contact{
			FirstName: first,
			LastName:  last,
			FullName:  first + " " + last,
			Company:   field(row, colCompany),
			Position:  field(row, colPosition),
		})
	}
	return contacts, nil
}

// StripCredentials truncates a last name at its first comma and trims the
// remainder, turning "Lovelace, PhD" into "Lovelace".
func StripCredentials(last string) string {
	if i := strings.IndexByte(last, ','); i >= 0 {
		last = last[:i]
	}
	return strings.TrimSpace(last)
}

// findHeader consumes lines from br up to and including the header line,
// which it returns. It returns "" if the input has no header.
func findHeader(br *bufio.Reader) (string, error) {
	for {
		line, err := br.ReadString('\n')
		if strings.Contains(line, colFirstName) && strings.Contains(line, colLastName) {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("reading connections: %w", err)
		}
	}
}
