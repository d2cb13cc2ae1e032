package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/render"
	"github.com/vmunix/marquee/internal/view"
)

const suggestLimit = 3

type listFlags struct {
	query string
	genre string
	from  int
	to    int
	sort  string
}

func newListCmd(opts *rootOptions) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies matching a search and filters",
		Example: `  marquee list --query матрица
  marquee list --genre драма --from 1990 --to 1999 --sort year_asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "Title search (case-insensitive substring)")
	cmd.Flags().StringVarP(&flags.genre, "genre", "g", "", "Only movies with this genre")
	cmd.Flags().IntVar(&flags.from, "from", 0, "Earliest year (inclusive)")
	cmd.Flags().IntVar(&flags.to, "to", 0, "Latest year (inclusive)")
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", string(view.DefaultSort), "Sort order")
	return cmd
}

// listOutput is the --json shape of a list.
type listOutput struct {
	Items   []movie.Movie    `json:"items"`
	Results int              `json:"results"`
	Total   int              `json:"total"`
	Filters view.FilterState `json:"filters"`
	Query   string           `json:"query,omitempty"`
}

func runList(cmd *cobra.Command, opts *rootOptions, flags *listFlags) error {
	sortOpt, err := view.ParseSort(flags.sort)
	if err != nil {
		return fmt.Errorf("--sort: %w", err)
	}
	filters := view.FilterState{
		Genre:    flags.genre,
		YearFrom: view.Year(flags.from),
		YearTo:   view.Year(flags.to),
		Sort:     sortOpt,
	}

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
	items := view.Derive(movies, filters, flags.query)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return printJSON(out, listOutput{
			Items:   items,
			Results: len(items),
			Total:   len(movies),
			Filters: filters,
			Query:   flags.query,
		})
	}

	render.List(out, items, render.ListSummary{
		Total:  len(movies),
		Active: filters.Active(flags.query),
	})
	if len(items) == 0 && flags.query != "" {
		suggestions, err := a.client.Suggest(ctx, flags.query, suggestLimit)
		if err != nil {
			return err
		}
		titles := make([]string, 0, len(suggestions))
		for _, s := range suggestions {
			titles = append(titles, s.Movie.Title)
		}
		render.Suggestions(out, titles)
	}
	return nil
}
