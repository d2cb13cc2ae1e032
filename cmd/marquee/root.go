package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	catalogURL string
	noPersist  bool
	jsonOutput bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "marquee",
		Short: "Browse a static movie catalog",
		Long: `marquee - browse a static movie catalog

Loads the catalog from <catalog.url>/data/movies.json, caches it for
five minutes, and lets you search, filter and sort it.

Run 'marquee serve' to host the catalog and the query API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().StringVar(&opts.catalogURL, "catalog-url", "", "Catalog origin, overrides catalog.url")
	rootCmd.PersistentFlags().BoolVar(&opts.noPersist, "no-persist", false, "Keep the cache in memory only")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level, overrides server.log_level")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("marquee {{.Version}}\n")

	rootCmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newGenresCmd(opts),
		newBrowseCmd(opts),
		newCacheCmd(opts),
		newConfigCmd(),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marquee %s\n", version)
		},
	}
}
