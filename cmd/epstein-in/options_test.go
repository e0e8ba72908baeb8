// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/epstein-in/internal/report"
	"github.com/pdiddy/epstein-in/internal/scan"
	"github.com/pdiddy/epstein-in/internal/search"
	"github.com/pdiddy/epstein-in/internal/secrets"
	"github.com/pdiddy/epstein-in/internal/xapi"
)

// newScanFlags returns a fresh scan-shaped command with viper reset and
// the token-related environment cleared.
func newScanFlags(t *testing.T) *cobra.Command {
	t.Helper()
	for _, k := range []string{"X_BEARER_TOKEN", "EPSTEIN_IN_X_BEARER_TOKEN", "EPSTEIN_IN_DELAY", "EPSTEIN_IN_OUTPUT"} {
		t.Setenv(k, "")
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	configureEnv()

	prev := loadedSecrets
	loadedSecrets = secrets.Store{}
	t.Cleanup(func() { loadedSecrets = prev })

	cmd := &cobra.Command{Use: "scan"}
	addScanFlags(cmd)
	return cmd
}

func TestLoadOptions_BearerTokenPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		env    map[string]string
		secret string
		want   string
	}{
		{name: "none", want: ""},
		{name: "env when flag unset", env: map[string]string{"X_BEARER_TOKEN": "envtok"}, want: "envtok"},
		{name: "prefixed env", env: map[string]string{"EPSTEIN_IN_X_BEARER_TOKEN": "pretok"}, want: "pretok"},
		{name: "prefixed env beats plain env", env: map[string]string{"EPSTEIN_IN_X_BEARER_TOKEN": "pretok", "X_BEARER_TOKEN": "envtok"}, want: "pretok"},
		{name: "flag beats env", flag: "flagtok", env: map[string]string{"X_BEARER_TOKEN": "envtok"}, want: "flagtok"},
		{name: "secrets fallback", secret: "sectok", want: "sectok"},
		{name: "env beats secrets", env: map[string]string{"X_BEARER_TOKEN": "envtok"}, secret: "sectok", want: "envtok"},
		{name: "flag beats secrets", flag: "flagtok", secret: "sectok", want: "flagtok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newScanFlags(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.secret != "" {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.XBearerToken), []byte(tt.secret+"\n"), 0o600))
				s, err := secrets.Load(dir, io.Discard)
				require.NoError(t, err)
				loadedSecrets = s
			}
			if tt.flag != "" {
				require.NoError(t, cmd.Flags().Set("x-bearer-token", tt.flag))
			}

			require.NoError(t, bindFlags(cmd))
			o := loadOptions()

			assert.Equal(t, tt.want, o.BearerToken)
			assert.Equal(t, tt.want, o.Lookup.BearerToken)
		})
	}
}

func TestLoadOptions_DotEnvFile(t *testing.T) {
	cmd := newScanFlags(t)
	require.NoError(t, os.Unsetenv("X_BEARER_TOKEN"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("X_BEARER_TOKEN=dotenvtok\n"), 0o600))
	require.NoError(t, godotenv.Load(envFile))

	loadedSecrets = secrets.Store{secrets.XBearerToken: "sectok"}

	require.NoError(t, bindFlags(cmd))
	assert.Equal(t, "dotenvtok", loadOptions().BearerToken)
}

func TestLoadOptions_DotEnvDoesNotOverrideEnv(t *testing.T) {
	cmd := newScanFlags(t)
	t.Setenv("X_BEARER_TOKEN", "envtok")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("X_BEARER_TOKEN=dotenvtok\n"), 0o600))
	require.NoError(t, godotenv.Load(envFile))

	require.NoError(t, bindFlags(cmd))
	assert.Equal(t, "envtok", loadOptions().BearerToken)
}

func TestLoadOptions_Defaults(t *testing.T) {
	cmd := newScanFlags(t)
	require.NoError(t, bindFlags(cmd))
	o := loadOptions()

	assert.Equal(t, defaultOutput, o.Output)
	assert.Empty(t, o.Export)
	assert.Equal(t, scan.DefaultInitialDelay, o.Search.InitialDelay)
	assert.Equal(t, defaultTimeout, o.Search.Timeout)
	assert.Equal(t, defaultUserAgent, o.Search.UserAgent)
	assert.Equal(t, search.DefaultEndpoint, o.Search.Endpoint)
	assert.Equal(t, search.DefaultIndex, o.Search.Index)
	assert.Equal(t, xapi.DefaultEndpoint, o.Lookup.Endpoint)
	assert.Equal(t, xapi.MaxBatchSize, o.Lookup.BatchSize)
	assert.Equal(t, report.DefaultDocumentsBaseURL, o.Report.DocumentsBaseURL)
	assert.Equal(t, report.DefaultVisibleHits, o.Report.VisibleHits)
}

func TestLoadOptions_FlagsAndEnvOverrideDefaults(t *testing.T) {
	cmd := newScanFlags(t)
	t.Setenv("EPSTEIN_IN_DELAY", "2s")
	require.NoError(t, cmd.Flags().Set("output", "out.html"))
	require.NoError(t, cmd.Flags().Set("connections", "Connections.csv"))

	require.NoError(t, bindFlags(cmd))
	o := loadOptions()

	assert.Equal(t, "out.html", o.Output)
	assert.Equal(t, "Connections.csv", o.Connections)
	assert.Equal(t, 2*time.Second, o.Search.InitialDelay)
}

func TestLoadOptions_NonPositiveDelayFallsBack(t *testing.T) {
	cmd := newScanFlags(t)
	require.NoError(t, cmd.Flags().Set("delay", "0s"))

	require.NoError(t, bindFlags(cmd))
	assert.Equal(t, scan.DefaultInitialDelay, loadOptions().Search.InitialDelay)
}

func TestInterruptSignals(t *testing.T) {
	assert.ElementsMatch(t, []os.Signal{os.Interrupt, syscall.SIGTERM}, interruptSignals)
}
