// @title         atlas API
// @version       1.0
// @description   Relay that turns veterinary case recordings into clinical-assistant summaries and follow-up answers via Google Gemini.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/artem13815/atlas/docs"
	"github.com/artem13815/atlas/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	// Load configuration from env/.env
	cfg := config.Load()
	loadCfg := func() config.Config {
		if debug {
			cfg.Debug = true
		}
		return cfg
	}

	cmd := &cobra.Command{
		Use:          "atlas",
		Short:        "Veterinary case analysis relay",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), loadCfg())
		},
	}
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(loadCfg))
	cmd.AddCommand(newAnalyzeCmd(loadCfg))
	return cmd
}
