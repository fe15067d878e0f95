package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/api"
	"github.com/planline/planline/pkg/buildinfo"
	"github.com/planline/planline/pkg/config"
	"github.com/planline/planline/pkg/pipeline"
)

// newServeCmd creates the serve command for running the HTTP API.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes generation, layout checking and run history over HTTP,
with Prometheus metrics on /metrics. The server shuts down gracefully
on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe builds the configured backends and runs the API server until the
// context is cancelled.
func runServe(ctx context.Context, configPath, addr string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := openHistory(ctx, cfg)
	if err != nil {
		_ = c.Close()
		return err
	}

	runner := pipeline.NewRunner(c, store, logger)
	runner.TTL = cfg.Cache.TTL.Std()
	runner.Defaults = generateDefaults(cfg)
	defer runner.Close()

	api.RegisterMetrics()

	logger.Info("starting server",
		"addr", addr,
		"build", buildinfo.String(),
		"cache", cfg.Cache.Backend,
		"history", cfg.History.Backend)

	return api.NewServer(runner, store, logger, addr).Start(ctx)
}
