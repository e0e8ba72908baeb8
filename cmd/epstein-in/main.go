// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the epstein-in CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/epstein-in/internal/logger"
	"github.com/pdiddy/epstein-in/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// interruptSignals cancel a running command's context.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the epstein-in CLI.
var rootCmd = &cobra.Command{
	Use:   "epstein-in",
	Short: "Search the Epstein files for mentions of your contacts",
	Long: `epstein-in reads your LinkedIn connections export and/or your X following
export, searches the public Epstein files index for each contact's name as an
exact phrase, and writes a self-contained HTML report of the matches.

Export your LinkedIn connections from Settings & Privacy > Data privacy >
Get a copy of your data > Connections. Export your X following list from
Settings > Your Account > Download an archive of your data, then use
data/following.js from the archive.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		format, _ := cmd.Flags().GetString("log-format")
		if err := logger.Init(os.Stderr, logger.Config{Verbose: verbose, Format: format}); err != nil {
			return err
		}

		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./epstein-in.yaml or ~/.config/epstein-in/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment if present")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP and rate-limit details to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "diagnostic log format: text or json")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("epstein-in")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "epstein-in"))
		}
	}

	configureEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configureEnv maps EPSTEIN_IN_* environment variables onto config keys.
func configureEnv() {
	viper.SetEnvPrefix("EPSTEIN_IN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
