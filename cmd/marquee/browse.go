package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/browse"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive catalog browser",
		Long: `Interactive catalog browser.

Type /text to search (debounced), 'open <id>' for details, 'esc' to close them,
'genre', 'from', 'to', 'sort' and 'reset' to filter. 'help' lists every command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s := browse.New(a.client, cmd.OutOrStdout(),
				browse.WithDebounce(a.cfg.Browse.Debounce),
				browse.WithLogger(a.logger.With("component", "browse")),
			)
			return s.Run(ctx, cmd.InOrStdin())
		},
	}
}
