// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/epstein-in/pkg/types"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the normalized, deduplicated contacts without searching",
	Long: `Contacts loads the same sources as scan and prints the contact list that
would be searched. X account IDs are resolved through the X users API.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
		defer stop()
		asYAML, _ := cmd.Flags().GetBool("yaml")
		return listContacts(ctx, loadOptions(), asYAML, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	addSourceFlags(contactsCmd)
	contactsCmd.Flags().Bool("yaml", false, "print contacts as YAML")

	rootCmd.AddCommand(contactsCmd)
}

// listContacts writes the contact list to out; progress goes to progress.
func listContacts(ctx context.Context, o options, asYAML bool, out, progress io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}
	list, err := loadContacts(ctx, o, &http.Client{Timeout: o.Lookup.Timeout}, progress)
	if err != nil {
		return err
	}

	if asYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	}
	return writeContactTable(out, list)
}

func writeContactTable(w io.Writer, list []types.Contact) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOSITION\tCOMPANY")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.FullName, c.Position, c.Company)
	}
	fmt.Fprintf(tw, "\n%d contacts\n", len(list))
	return tw.Flush()
}
