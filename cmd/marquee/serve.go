package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/marquee/internal/api/v1"
	"github.com/vmunix/marquee/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the static catalog and the query API",
		Long: `Serves server.catalog_file at /data/movies.json and the derived
catalog view under /api/v1. The API reads the catalog through catalog.url, so
pointing catalog.url at this server makes it self-hosting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.cfg
			mux := http.NewServeMux()
			v1.New(a.client, v1.Config{CatalogFile: cfg.Server.CatalogFile}, a.logger.With("component", "api")).
				RegisterRoutes(mux)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			a.logger.Info("serving catalog",
				"addr", addr,
				"catalog_file", cfg.Server.CatalogFile,
				"catalog_url", cfg.Catalog.URL,
				"persist", cfg.Cache.Persistent(),
				"log_level", cfg.Server.LogLevel,
			)

			runner := server.NewRunner(v1.LogRequests(mux, a.logger), server.Config{Addr: addr}, a.logger.With("component", "server"))
			return runner.Run(ctx)
		},
	}
}
