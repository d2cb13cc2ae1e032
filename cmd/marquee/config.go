package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "test [path]",
			Short: "Validate configuration file",
			Long:  "Validates config.toml syntax, field values, and environment variable substitution.",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runConfigTest,
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write an example configuration file",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runConfigInit,
		},
	)
	return configCmd
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}
	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, v := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	persist := "enabled"
	if !cfg.Cache.Persistent() {
		persist = "disabled"
	}
	fmt.Fprintf(w, "Catalog:  %s (timeout %s)\n", cfg.Catalog.URL, cfg.Catalog.Timeout)
	fmt.Fprintf(w, "Cache:    %s, ttl %s, persist %s\n", cfg.Cache.Path, cfg.Cache.TTL, persist)
	fmt.Fprintf(w, "Server:   %s:%d (log level %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Fprintf(w, "Catalog file: %s\n", cfg.Server.CatalogFile)
	fmt.Fprintf(w, "Browse:   debounce %s\n", cfg.Browse.Debounce)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
