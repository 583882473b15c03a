package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-explorer/internal/logging"
	"github.com/pdiddy/doc-explorer/internal/tui"
	"github.com/pdiddy/doc-explorer/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse [location]",
	Short: "Explore papers in the terminal",
	Long: `Browse opens the interactive explorer: a search form with the topic cloud,
the result list, and the article view with its related papers and a scatter
plot colored by year. An optional location such as "/article/42" opens that
surface first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("log-file", filepath.Join(os.TempDir(), "docexplorer.log"), "file to write logs to while the UI runs")

	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")
	var err error
	logger, err = logging.New(cfg.Log, logFile)
	if err != nil {
		return err
	}

	start := "/"
	if len(args) == 1 {
		start = args[0]
	}
	session, err := view.NewSession(cmd.Context(), start, newClient(), logger)
	if err != nil {
		return fmt.Errorf("opening %s: %w", start, err)
	}
	defer session.Close()

	p := tea.NewProgram(tui.New(session), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
