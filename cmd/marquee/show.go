package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/render"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|title>",
		Short: "Show movie details",
		Long: `Show movie details by id, or by title.

A title is matched case-insensitively as a substring. When it matches more than
one movie the matches are listed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			var m movie.Movie
			if id, perr := strconv.ParseInt(args[0], 10, 64); perr == nil && len(args) == 1 {
				m, err = a.client.Movie(ctx, id)
				if err != nil {
					return err
				}
			} else {
				query := strings.Join(args, " ")
				matches, err := a.client.Search(ctx, query)
				if err != nil {
					return err
				}
				switch len(matches) {
				case 0:
					return fmt.Errorf("no movie matches %q", query)
				case 1:
					m = matches[0]
				default:
					if opts.jsonOutput {
						return printJSON(cmd.OutOrStdout(), matches)
					}
					render.List(cmd.OutOrStdout(), matches, render.ListSummary{Total: len(matches)})
					return nil
				}
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), m)
			}
			render.Modal(cmd.OutOrStdout(), &m)
			return nil
		},
	}
}
