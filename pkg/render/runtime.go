package render

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/loop"
)

const tracerName = "github.com/deuce-x/deuce/pkg/render"

// Runtime binds slots to a document and the loop they run on.
// All of its methods, and every slot it creates, must be used from the
// loop goroutine.
type Runtime struct {
	doc     dom.Document
	loop    *loop.Loop
	ctx     context.Context
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	onError func(error)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime logger.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = m
	}
}

// WithTracer sets the tracer used for root, future and stream spans.
func WithTracer(t trace.Tracer) Option {
	return func(rt *Runtime) {
		if t != nil {
			rt.tracer = t
		}
	}
}

// WithErrorHandler sets the function receiving errors raised after mount
// returned: producer failures and classification errors of asynchronous
// values. The default handler logs them.
func WithErrorHandler(fn func(error)) Option {
	return func(rt *Runtime) {
		rt.onError = fn
	}
}

// WithContext sets the parent context of every Future and Stream. Cancelling
// it cancels all pending asynchronous work.
func WithContext(ctx context.Context) Option {
	return func(rt *Runtime) {
		if ctx != nil {
			rt.ctx = ctx
		}
	}
}

// NewRuntime creates a runtime rendering into doc on l.
func NewRuntime(doc dom.Document, l *loop.Loop, opts ...Option) *Runtime {
	rt := &Runtime{
		doc:    doc,
		loop:   l,
		ctx:    context.Background(),
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.logger = rt.logger.With("component", "render")
	return rt
}

// Document returns the document the runtime renders into.
func (rt *Runtime) Document() dom.Document {
	return rt.doc
}

// Loop returns the loop the runtime runs on.
func (rt *Runtime) Loop() *loop.Loop {
	return rt.loop
}

// fail hands an asynchronous error to the error handler.
func (rt *Runtime) fail(err error) {
	rt.metrics.fail(err)
	if rt.onError != nil {
		rt.onError(err)
		return
	}
	rt.logger.Error("render error", "type", errorType(err), "error", err)
}

func errorType(err error) string {
	var ce *ClassificationError
	var pe *ComponentError
	switch {
	case errors.As(err, &ce):
		return "classification"
	case errors.As(err, &pe):
		return "component"
	default:
		return "other"
	}
}
