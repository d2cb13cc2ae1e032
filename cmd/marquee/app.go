package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/config"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// app holds the wired dependencies of one command invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *catalog.Client
	db     *sql.DB
}

// newApp loads configuration and wires logger, cache and catalog client.
// An unusable cache database degrades to a memory-only cache.
func newApp(ctx context.Context, opts *rootOptions, stderr io.Writer) (*app, error) {
	cfg, _, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opts.catalogURL != "" {
		cfg.Catalog.URL = opts.catalogURL
	}
	if opts.noPersist {
		persist := false
		cfg.Cache.Persist = &persist
	}
	level := cfg.Server.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))

	a := &app{cfg: cfg, logger: logger}

	cacheOpts := []cache.Option{
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithLogger(logger.With("component", "cache")),
	}
	if cfg.Cache.Persistent() {
		db, err := cache.OpenSQLite(ctx, cfg.Cache.Path)
		if err != nil {
			logger.Warn("persisted cache unavailable, using memory only", "path", cfg.Cache.Path, "error", err)
		} else {
			a.db = db
			cacheOpts = append(cacheOpts, cache.WithStorage(cache.NewSQLiteStorage(db)))
		}
	}

	a.client = catalog.NewClient(
		catalog.WithBaseURL(cfg.Catalog.URL),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		catalog.WithCache(cache.New(cacheOpts...)),
		catalog.WithLogger(logger.With("component", "catalog")),
	)
	return a, nil
}

// Close releases the cache database.
func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

