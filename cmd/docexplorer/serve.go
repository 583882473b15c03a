package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-explorer/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer over HTTP",
	Long: `Serve renders the explorer as web pages at /, /search/{query}, and
/article/{id}. Append ?format=json to any page for its view model.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides serve.addr)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	serveCfg := cfg.Serve
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		serveCfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(newClient(), serveCfg, logger).ListenAndServe(ctx)
}
