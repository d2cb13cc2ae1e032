package main

import (
	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/render"
	"github.com/vmunix/marquee/internal/view"
)

func newGenresCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "Show available genres, year range and sort options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			movies, err := a.client.Movies(ctx)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"genres": view.Genres(movies),
					"years":  view.YearRange(movies),
					"sort":   view.SortOptions(),
				})
			}
			render.Filters(cmd.OutOrStdout(), movies, view.DefaultFilters())
			return nil
		},
	}
}
