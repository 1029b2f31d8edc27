package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/pkg/inspector"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port  int
		host  string
		tick  time.Duration
		store string
	)

	cmd := &cobra.Command{
		Use:   "serve [demo]",
		Short: "Serve a demo in the browser",
		Long: `Render a demo and serve a live view of it.

Browsers get the current document and every later commit over a
WebSocket; their clicks and key presses are dispatched back into the
rendered tree.

Examples:
  deuce serve
  deuce serve todo --port=8080 --store=redis`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Inspector.Port = port
			}
			if host != "" {
				cfg.Inspector.Host = host
			}
			if store != "" {
				cfg.Store.Backend = store
			}
			name := cfg.Demo
			if len(args) == 1 {
				name = args[0]
			}

			s, err := openSession(cfg, name, tick, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			opts := []inspector.Option{
				inspector.WithLogger(s.logger),
				inspector.WithTitle("deuce: " + name),
			}
			if s.registry != nil {
				opts = append(opts, inspector.WithGatherer(s.registry))
			}
			srv := inspector.New(s.root, s.doc, s.loop, opts...)

			ln, err := net.Listen("tcp", cfg.InspectorAddress())
			if err != nil {
				return errors.New("D301").
					WithDetail("Cannot listen on " + cfg.InspectorAddress() + ".").
					WithSuggestion("Pick another port with --port").
					Wrap(err)
			}

			w := cmd.OutOrStdout()
			printBanner(w)
			success(w, "Serving %q at http://%s", name, ln.Addr())
			info(w, "Press Ctrl-C to stop")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return ignoreStop(s.loop.Run(gctx))
			})
			g.Go(func() error {
				if err := srv.ServeListener(gctx, ln); err != nil {
					return errors.New("D302").Wrap(err)
				}
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Unit of the delays in the demos")
	cmd.Flags().StringVar(&store, "store", "", "To-do store backend: memory, file, redis or s3 (default from config)")

	return cmd
}
