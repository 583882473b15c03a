// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docexplorer CLI: an interactive
// terminal explorer, an HTTP front end, and one-shot lookup commands over
// the document service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/api"
	"github.com/pdiddy/doc-explorer/internal/config"
	"github.com/pdiddy/doc-explorer/internal/logging"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    types.ExplorerConfig
	logger = zap.NewNop()
)

// rootCmd is the base command for the docexplorer CLI.
var rootCmd = &cobra.Command{
	Use:   "docexplorer",
	Short: "Explore a corpus of research papers through its search service",
	Long: `docexplorer is a client for a document search service. It searches papers
by title, author, or topic, opens an article with its related papers, and
plots the related set colored by publication year.

Run "docexplorer browse" for the terminal explorer or "docexplorer serve" for
the web front end. The search, article, and topics commands print a single
view as a table, JSON, or YAML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		v, err := config.New(cfgFile)
		if err != nil {
			return err
		}
		if baseURL, _ := cmd.Flags().GetString("api"); baseURL != "" {
			v.Set("api.base_url", baseURL)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			v.Set("log.level", level)
		}
		cfg, err = config.Load(v)
		if err != nil {
			return err
		}
		if used := v.ConfigFileUsed(); used != "" {
			fmt.Fprintln(os.Stderr, "Using config file:", used)
		}

		if cmd.Name() == "browse" {
			// The terminal UI owns the screen; logs go to a file.
			return nil
		}
		logger, err = logging.New(cfg.Log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docexplorer.yaml or ~/.config/docexplorer/docexplorer.yaml)")
	rootCmd.PersistentFlags().String("api", "", "document service base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

// newClient returns the document service client for the loaded config.
func newClient() *api.Client {
	return api.NewClient(cfg.API, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
