package main

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/deuce-x/deuce/internal/config"
	"github.com/deuce-x/deuce/internal/demo"
	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo/backend"
	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/loop"
	"github.com/deuce-x/deuce/pkg/render"
)

// loadConfig loads the config file and applies the global flags.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = strings.ToLower(flags.logLevel)
	}
	if flags.logFormat != "" {
		cfg.Log.Format = strings.ToLower(flags.logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to w, which is stderr
// outside of tests.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// session is a demo rendered into an in-memory document.
type session struct {
	cfg      *config.Config
	demo     demo.Demo
	logger   *slog.Logger
	registry *prometheus.Registry // nil unless metrics are enabled
	doc      *dom.Memory
	loop     *loop.Loop
	root     *render.Root

	closeStore func() error
}

// openSession renders the named demo. The caller drives the loop and
// calls close.
func openSession(cfg *config.Config, name string, tick time.Duration, logs io.Writer) (*session, error) {
	d, err := demo.Get(name)
	if err != nil {
		return nil, err
	}

	logger := newLogger(logs, cfg.Log)
	store, closeStore, err := backend.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Store.Backend, "location", backend.Describe(cfg))

	s := &session{
		cfg:        cfg,
		demo:       d,
		logger:     logger,
		doc:        dom.NewMemory(),
		closeStore: closeStore,
	}
	s.loop = loop.New(loop.WithLogger(logger))

	opts := []render.Option{
		render.WithLogger(logger),
		render.WithErrorHandler(func(err error) {
			logger.Error("render error", "code", errors.Code(err), "error", err)
		}),
	}
	if cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, render.WithMetrics(render.NewMetrics(
			render.WithNamespace(cfg.Metrics.Namespace),
			render.WithRegistry(s.registry),
		)))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, render.WithTracer(otel.Tracer(cfg.Tracing.TracerName)))
	} else {
		opts = append(opts, render.WithTracer(noop.NewTracerProvider().Tracer("")))
	}
	rt := render.NewRuntime(s.doc, s.loop, opts...)

	env := demo.Env{Store: store, Logger: logger, Tick: tick}
	root, err := render.Render(rt, s.doc.Body(), d.Build(env)...)
	if err != nil {
		s.loop.Close()
		closeStore()
		return nil, errors.FromError(err, "D001")
	}
	s.root = root
	return s, nil
}

// close unmounts the demo. The loop must no longer be driven.
func (s *session) close() {
	s.root.Unmount()
	s.loop.Close()
	s.loop.Drain()
	s.loop.Wait()
	if err := s.closeStore(); err != nil {
		s.logger.Warn("closing store", "error", err)
	}
}

// ignoreStop maps the end of a run by signal or timeout to success.
func ignoreStop(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
