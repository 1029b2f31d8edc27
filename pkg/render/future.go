package render

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"github.com/deuce-x/deuce/pkg/element"
)

// futureSlot renders nothing until its Future settles, then mounts the
// settled value with its own report. A value settling after Unmount is
// dropped.
type futureSlot struct {
	rt     *Runtime
	future element.Future
	live   bool
	cancel context.CancelFunc
	inner  Slot
}

func (s *futureSlot) Mount(report Report) error {
	ctx, cancel := context.WithCancel(s.rt.ctx)
	ctx, span := s.rt.tracer.Start(ctx, "render.Future")
	s.cancel = cancel
	s.live = true
	s.rt.metrics.mount(element.KindFuture)

	future := s.future
	s.rt.loop.Go(func() func() {
		value, err := future.Await(ctx)
		return func() {
			defer span.End()
			if !s.live {
				span.SetStatus(codes.Error, "unmounted")
				s.rt.metrics.discard(element.KindFuture)
				s.rt.logger.Debug("future settled after unmount")
				return
			}
			s.cancel()
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				s.rt.fail(&ComponentError{Kind: element.KindFuture, Err: err})
				return
			}
			s.settle(value, report)
		}
	})
	return nil
}

func (s *futureSlot) settle(value element.Element, report Report) {
	inner, err := s.rt.Classify(value)
	if err != nil {
		s.rt.fail(err)
		return
	}
	if err := inner.Mount(report); err != nil {
		s.rt.fail(err)
		return
	}
	s.inner = inner
}

func (s *futureSlot) Unmount() {
	if !s.live {
		return
	}
	s.live = false
	s.cancel()
	if s.inner != nil {
		s.inner.Unmount()
		s.inner = nil
	}
	s.rt.metrics.unmount(element.KindFuture)
}

func (s *futureSlot) Kind() element.Kind { return element.KindFuture }
