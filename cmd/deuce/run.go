package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/render"
)

func runCmd(flags *globalFlags) *cobra.Command {
	var (
		commits int
		timeout time.Duration
		tick    time.Duration
		store   string
	)

	cmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "Render a demo and print every commit",
		Long: `Render a demo into an in-memory document and print the
document's HTML after every commit, one line per commit:

  #<commit> <html>

The run ends after --commits commits, after --timeout, or on Ctrl-C.

Examples:
  deuce run hello
  deuce run active --commits 12 --tick 100ms
  deuce run todo --store file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if store != "" {
				cfg.Store.Backend = store
			}
			name := cfg.Demo
			if len(args) == 1 {
				name = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			s, err := openSession(cfg, name, tick, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()
			return printCommits(ctx, s, cmd.OutOrStdout(), commits)
		},
	}

	cmd.Flags().IntVarP(&commits, "commits", "n", 0, "Stop after this many commits (0 = no limit)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Stop after this long (0 = no limit)")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Unit of the delays in the demos")
	cmd.Flags().StringVar(&store, "store", "", "To-do store backend: memory, file, redis or s3 (default from config)")

	return cmd
}

// printCommits drives the loop and prints the container after the initial
// render and after every commit, until limit commits were printed or ctx
// ends.
func printCommits(ctx context.Context, s *session, w io.Writer, limit int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printed := 0
	show := func(seq uint64) {
		fmt.Fprintf(w, "#%d %s\n", seq, dom.InnerHTML(s.root.Container()))
		printed++
		if limit > 0 && printed >= limit {
			cancel()
		}
	}

	show(s.root.Commits())
	if ctx.Err() != nil {
		return nil
	}
	unsubscribe := s.root.Subscribe(func(c render.Commit) { show(c.Seq) })
	defer unsubscribe()

	return ignoreStop(s.loop.Run(ctx))
}
