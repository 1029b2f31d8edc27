package render

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/deuce-x/deuce/pkg/element"
)

type streamState uint8

const (
	streamIdle     streamState = iota
	streamRunning              // between steps
	streamStepping             // Next in flight
	streamDone                 // finished or failed
	streamStopped              // unmounted
)

func (s streamState) String() string {
	switch s {
	case streamIdle:
		return "idle"
	case streamRunning:
		return "running"
	case streamStepping:
		return "stepping"
	case streamDone:
		return "done"
	case streamStopped:
		return "stopped"
	default:
		return "invalid"
	}
}

// streamSlot renders every value of a Stream in turn. Each value replaces
// the previous one: the old inner slot is unmounted and a fresh one is
// mounted with the slot's report. A final value is rendered last; a stream
// that finishes without one keeps showing its last value.
//
// Unmount abandons a step in flight: its result is dropped when it arrives
// and the stream is not advanced again.
type streamSlot struct {
	rt     *Runtime
	stream element.Stream
	state  streamState
	ctx    context.Context
	cancel context.CancelFunc
	report Report
	inner  Slot
	steps  int
}

func (s *streamSlot) Mount(report Report) error {
	s.ctx, s.cancel = context.WithCancel(s.rt.ctx)
	s.report = report
	s.state = streamRunning
	s.rt.metrics.mount(element.KindStream)
	s.advance()
	return nil
}

// advance asks the stream for its next value in the background.
func (s *streamSlot) advance() {
	s.state = streamStepping
	ctx, span := s.rt.tracer.Start(s.ctx, "render.Stream.Next",
		trace.WithAttributes(attribute.Int("step", s.steps)))

	stream := s.stream
	s.rt.loop.Go(func() func() {
		value, done, err := stream.Next(ctx)
		return func() {
			defer span.End()
			s.apply(value, done, err, span)
		}
	})
}

func (s *streamSlot) apply(value element.Element, done bool, err error, span trace.Span) {
	if s.state == streamStopped {
		span.SetStatus(codes.Error, "unmounted")
		s.rt.metrics.discard(element.KindStream)
		s.rt.logger.Debug("stream step after unmount", "step", s.steps)
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.finish()
		s.rt.fail(&ComponentError{Kind: element.KindStream, Err: err})
		return
	}

	if done && value.IsAbsent() && s.inner != nil {
		span.SetAttributes(attribute.Bool("done", true))
		s.finish()
		return
	}

	inner, cerr := s.rt.Classify(value)
	if cerr != nil {
		s.finish()
		s.rt.fail(cerr)
		return
	}
	if s.inner != nil {
		s.inner.Unmount()
		s.inner = nil
	}
	if merr := inner.Mount(s.report); merr != nil {
		s.report(nil)
		s.finish()
		s.rt.fail(merr)
		return
	}
	s.inner = inner
	s.steps++
	s.rt.metrics.step()
	span.SetAttributes(attribute.Bool("done", done))

	if done {
		s.finish()
		return
	}
	s.state = streamRunning
	s.advance()
}

func (s *streamSlot) finish() {
	s.state = streamDone
	s.cancel()
}

func (s *streamSlot) Unmount() {
	if s.state == streamIdle || s.state == streamStopped {
		return
	}
	s.state = streamStopped
	s.cancel()
	if s.inner != nil {
		s.inner.Unmount()
		s.inner = nil
	}
	s.rt.metrics.unmount(element.KindStream)
}

func (s *streamSlot) Kind() element.Kind { return element.KindStream }
