package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/launchdash/internal/dashboard"
	"github.com/dbsmedya/launchdash/internal/figure"
	"github.com/dbsmedya/launchdash/internal/lifecycle"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard",
	Long: `Serve loads the launch dataset once and serves the dashboard page with
the site dropdown, the success pie chart, the payload range slider and the
payload vs. outcome scatter chart.

The server shuts down gracefully on SIGINT or SIGTERM.

Example:
  launchdash serve --data spacex_launch_dash.csv --addr 127.0.0.1:8050`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "",
		"Override listen address (host:port)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, ds, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := lifecycle.SetupSignalHandlerWithCallback(commandContext(cmd), func(sig os.Signal) {
		log.Infow("Received signal, stopping", "signal", sig.String())
	})
	defer cancel()

	cache, err := figure.NewCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer cache.Close()

	controller := dashboard.NewController(ds, log.WithComponent("controller"))
	if _, err := controller.Initial(ctx); err != nil {
		return fmt.Errorf("failed to build initial figures: %w", err)
	}

	renderer := figure.NewRenderer(cache, log.WithComponent("renderer"))
	handler := dashboard.NewHandler(controller, renderer, cfg.Slider, log.WithComponent("http"))
	server := dashboard.NewServer(cfg.Server, dashboard.NewMux(handler), log)

	return server.ListenAndServe(ctx)
}
