package element

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

// ErrStopped is returned by Yielder.Yield once the consumer of the stream
// has gone away. Generator bodies should return when they see it.
var ErrStopped = errors.New("element: stream stopped")

// Stream is a long-lived asynchronous producer of elements.
//
// Next blocks until the next element is available. It returns done=false
// for every yielded element and done=true exactly once, together with the
// final element (Absent if there is none). A Stream is consumed by a single
// slot; Next is never called concurrently.
type Stream interface {
	Next(ctx context.Context) (value Element, done bool, err error)
}

// Yielder hands elements from a generator body to the stream consumer.
type Yielder struct {
	g   *generator
	ctx context.Context
}

// Yield publishes v and suspends the body until the consumer asks for the
// next element. It returns an error if the consumer stopped or ctx ended.
func (y *Yielder) Yield(v any) error {
	select {
	case y.g.out <- step{value: Of(v)}:
	case <-y.g.stop:
		return ErrStopped
	case <-y.ctx.Done():
		return y.ctx.Err()
	}
	select {
	case <-y.g.resume:
		return nil
	case <-y.g.stop:
		return ErrStopped
	case <-y.ctx.Done():
		return y.ctx.Err()
	}
}

// Context returns the context the body runs with.
func (y *Yielder) Context() context.Context {
	return y.ctx
}

type step struct {
	value Element
	done  bool
	err   error
}

// generator is a coroutine: the body runs on its own goroutine but only
// between a Next call and the following Yield.
type generator struct {
	body func(ctx context.Context, y *Yielder) (Element, error)

	started  bool
	finished bool
	out      chan step
	resume   chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// Generate creates a Stream element driven by body. The body starts on the
// first Next, with that call's context, and is suspended at every Yield until
// the next Next. Its return value is the stream's final element.
func Generate(body func(ctx context.Context, y *Yielder) (Element, error)) Element {
	return FromStream(&generator{
		body:   body,
		out:    make(chan step),
		resume: make(chan struct{}),
		stop:   make(chan struct{}),
	})
}

// Next implements Stream.
func (g *generator) Next(ctx context.Context) (Element, bool, error) {
	if g.finished {
		return Absent, true, nil
	}
	if !g.started {
		g.started = true
		go g.run(ctx)
	} else {
		select {
		case g.resume <- struct{}{}:
		case <-ctx.Done():
			g.halt()
			return Absent, true, ctx.Err()
		}
	}
	select {
	case s := <-g.out:
		if s.done || s.err != nil {
			g.finished = true
			s.done = true
		}
		return s.value, s.done, s.err
	case <-ctx.Done():
		g.halt()
		return Absent, true, ctx.Err()
	}
}

func (g *generator) halt() {
	g.finished = true
	g.stopOnce.Do(func() { close(g.stop) })
}

func (g *generator) run(ctx context.Context) {
	final, err := g.call(ctx)
	select {
	case g.out <- step{value: final, done: true, err: err}:
	case <-g.stop:
	case <-ctx.Done():
	}
}

func (g *generator) call(ctx context.Context) (final Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v\n%s", r, debug.Stack())
		}
	}()
	return g.body(ctx, &Yielder{g: g, ctx: ctx})
}

// chanStream yields every value received from a channel.
type chanStream[T any] struct {
	ch <-chan T
}

// Channel creates a Stream element that yields each value received from ch
// and finishes when ch is closed, leaving the last value rendered.
func Channel[T any](ch <-chan T) Element {
	return FromStream(&chanStream[T]{ch: ch})
}

// Next implements Stream.
func (s *chanStream[T]) Next(ctx context.Context) (Element, bool, error) {
	select {
	case v, ok := <-s.ch:
		if !ok {
			return Absent, true, nil
		}
		return Of(v), false, nil
	case <-ctx.Done():
		return Absent, true, ctx.Err()
	}
}
