// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/epstein-in/internal/report"
	"github.com/pdiddy/epstein-in/internal/scan"
	"github.com/pdiddy/epstein-in/internal/search"
	"github.com/pdiddy/epstein-in/internal/secrets"
	"github.com/pdiddy/epstein-in/internal/xapi"
	"github.com/pdiddy/epstein-in/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "epstein-in/0.1"
	defaultOutput    = "EpsteIn.html"
)

// options holds the resolved settings for one command run.
type options struct {
	Connections string
	Following   string
	BearerToken string
	Output      string
	Export      string

	Search types.SearchConfig
	Lookup types.LookupConfig
	Report types.ReportConfig
}

// addSourceFlags registers the contact-source flags shared by scan and contacts.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("connections", "c", "", "path to LinkedIn connections CSV export")
	cmd.Flags().String("x-following", "", "path to X data export following.js")
	cmd.Flags().String("x-bearer-token", "", "X API bearer token (or set X_BEARER_TOKEN)")
	cmd.Flags().String("lookup-endpoint", xapi.DefaultEndpoint, "X users lookup endpoint")
	cmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
}

// bindFlags makes the running command's flags the source for viper keys,
// so config-file and environment values fill in unset flags.
func bindFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return viper.BindEnv("x-bearer-token", "EPSTEIN_IN_X_BEARER_TOKEN", "X_BEARER_TOKEN")
}

// loadOptions resolves settings from flags, environment, config file, and
// the secrets directory, in that order of precedence.
func loadOptions() options {
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay := viper.GetDuration("delay")
	if delay <= 0 {
		delay = scan.DefaultInitialDelay
	}
	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}

	token := viper.GetString("x-bearer-token")
	if token == "" {
		token = loadedSecrets.Get(secrets.XBearerToken)
	}

	output := viper.GetString("output")
	if output == "" {
		output = defaultOutput
	}

	return options{
		Connections: viper.GetString("connections"),
		Following:   viper.GetString("x-following"),
		BearerToken: token,
		Output:      output,
		Export:      viper.GetString("export"),
		Search: types.SearchConfig{
			HTTPConfig:   httpCfg,
			Endpoint:     stringOr(viper.GetString("search-endpoint"), search.DefaultEndpoint),
			Index:        stringOr(viper.GetString("index"), search.DefaultIndex),
			InitialDelay: delay,
		},
		Lookup: types.LookupConfig{
			HTTPConfig:  httpCfg,
			Endpoint:    stringOr(viper.GetString("lookup-endpoint"), xapi.DefaultEndpoint),
			BearerToken: token,
			BatchSize:   xapi.MaxBatchSize,
		},
		Report: types.ReportConfig{
			DocumentsBaseURL: stringOr(viper.GetString("documents-base-url"), report.DefaultDocumentsBaseURL),
			VisibleHits:      viper.GetInt("visible-hits"),
		},
	}
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
