package element

import (
	"context"
	"sync"
)

// Future is a one-shot asynchronous producer of exactly one element.
//
// Await blocks until the element is available or ctx is done. It is called
// from a background goroutine, never from the render loop.
type Future interface {
	Await(ctx context.Context) (Element, error)
}

// FutureFunc adapts a function to the Future interface.
// Each call to Await runs the function again; use Async for a shared,
// run-once future.
type FutureFunc func(ctx context.Context) (Element, error)

// Await implements Future.
func (f FutureFunc) Await(ctx context.Context) (Element, error) {
	return f(ctx)
}

// promise runs its function at most once and shares the outcome with
// every awaiter.
type promise struct {
	fn func(ctx context.Context) (Element, error)

	once  sync.Once
	done  chan struct{}
	value Element
	err   error
}

// Async creates a Future element whose function runs once, on the first
// Await, with that caller's context. Later awaiters share the result.
func Async(fn func(ctx context.Context) (Element, error)) Element {
	return FromFuture(&promise{fn: fn, done: make(chan struct{})})
}

// Await implements Future.
func (p *promise) Await(ctx context.Context) (Element, error) {
	p.once.Do(func() {
		go func() {
			defer close(p.done)
			p.value, p.err = p.fn(ctx)
		}()
	})
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return Absent, ctx.Err()
	}
}

// Resolved returns a Future element that is already settled with v.
func Resolved(v any) Element {
	e := Of(v)
	return FromFuture(FutureFunc(func(context.Context) (Element, error) {
		return e, nil
	}))
}
