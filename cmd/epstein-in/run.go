// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pdiddy/epstein-in/internal/contacts"
	"github.com/pdiddy/epstein-in/internal/report"
	"github.com/pdiddy/epstein-in/internal/scan"
	"github.com/pdiddy/epstein-in/internal/search"
	"github.com/pdiddy/epstein-in/internal/xapi"
	"github.com/pdiddy/epstein-in/pkg/types"
)

var errNoSource = errors.New(`no contact source specified: provide --connections and/or --x-following

  LinkedIn:  epstein-in scan --connections Connections.csv
  X:         epstein-in scan --x-following following.js --x-bearer-token TOKEN
  Both:      epstein-in scan --connections Connections.csv --x-following following.js --x-bearer-token TOKEN`)

// validate checks sources, credentials, and input files before any work.
func (o options) validate() error {
	if o.Connections == "" && o.Following == "" {
		return errNoSource
	}
	if o.Following != "" && o.BearerToken == "" {
		return fmt.Errorf("--x-bearer-token (or X_BEARER_TOKEN) is required when using --x-following")
	}
	if o.Connections != "" {
		if _, err := os.Stat(o.Connections); err != nil {
			return fmt.Errorf("connections file not found: %s", o.Connections)
		}
	}
	if o.Following != "" {
		if _, err := os.Stat(o.Following); err != nil {
			return fmt.Errorf("following file not found: %s", o.Following)
		}
	}
	return nil
}

// loadContacts parses every configured source, resolves X account IDs to
// names, and deduplicates the combined list with LinkedIn contacts first.
// Both files are parsed before the first network request.
func loadContacts(ctx context.Context, o options, client *http.Client, w io.Writer) ([]types.Contact, error) {
	var all []types.Contact

	if o.Connections != "" {
		fmt.Fprintf(w, "Reading LinkedIn connections from: %s\n", o.Connections)
		linkedin, err := contacts.ParseConnectionsFile(o.Connections)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Found %d LinkedIn connections\n", len(linkedin))
		all = append(all, linkedin...)
	}

	if o.Following != "" {
		fmt.Fprintf(w, "Reading X following from: %s\n", o.Following)
		ids, err := contacts.ParseFollowingFile(o.Following)
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(w, "Found %d followed accounts, resolving names via X API...\n", len(ids))
		xc := &xapi.Client{HTTP: client, Cfg: o.Lookup}
		res, err := xc.Resolve(ctx, ids, w)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Resolved %d X accounts\n", len(res.Contacts))
		all = append(all, res.Contacts...)
	}

	return contacts.Deduplicate(all), nil
}

// runScan executes the whole pipeline: load contacts, search each one,
// and write the report. Cancelling ctx stops the search loop; the report
// is then written from the results gathered so far, or skipped if there
// are none. stopSignals, if non-nil, is called once searching ends so a
// second interrupt terminates the process.
func runScan(ctx context.Context, o options, stopSignals func(), w io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}

	client := &http.Client{Timeout: o.Search.Timeout}

	list, err := loadContacts(ctx, o, client, w)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(w, "\nInterrupted while loading contacts. No report generated.")
			return nil
		}
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no contacts found: check your input files")
	}

	fmt.Fprintf(w, "Total unique contacts to search: %d\n", len(list))
	fmt.Fprintln(w, "Searching Epstein files API...")
	fmt.Fprintln(w, "(Press Ctrl+C to stop and generate a partial report)")
	fmt.Fprintln(w)

	sc := &search.Client{HTTP: client, Cfg: o.Search}
	out := scan.Run(ctx, sc, list, o.Search.InitialDelay, w)
	if stopSignals != nil {
		stopSignals()
	}

	if out.Interrupted {
		fmt.Fprintln(w, "\nSearch interrupted.")
		if out.Searched() == 0 {
			fmt.Fprintln(w, "No results collected yet. Exiting without generating report.")
			return nil
		}
		fmt.Fprintf(w, "Generating partial report with %d of %d contacts searched...\n", out.Searched(), out.Total)
	}

	scan.SortByMentions(out.Results)

	data := report.Data{
		Results:     out.Results,
		Total:       out.Total,
		Interrupted: out.Interrupted,
		GeneratedAt: time.Now(),
		Config:      o.Report,
	}

	fmt.Fprintf(w, "\nWriting report to: %s\n", o.Output)
	if err := report.WriteFile(o.Output, data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if o.Export != "" {
		fmt.Fprintf(w, "Writing YAML export to: %s\n", o.Export)
		if err := report.WriteYAML(o.Export, data); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
	}

	printSummary(w, out)
	fmt.Fprintf(w, "\nFull report saved to: %s\n", o.Output)
	return nil
}
