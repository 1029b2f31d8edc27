package loop

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrClosed is returned when work is submitted to a closed loop.
var ErrClosed = errors.New("loop: closed")

// Loop is a single-goroutine task queue. Tasks posted from any goroutine run
// one at a time, in order, on whichever goroutine drives the loop with Run,
// Step or Drain. Everything that touches the document or slot state runs as
// a loop task.
type Loop struct {
	logger  *slog.Logger
	onPanic func(any, []byte)

	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}

	// work tracks goroutines started with Go.
	work sync.WaitGroup
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for panic reports.
func WithLogger(l *slog.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// OnPanic sets a function called, on the loop goroutine, with the value and
// stack of every panic recovered from a task.
func OnPanic(fn func(v any, stack []byte)) Option {
	return func(lp *Loop) {
		lp.onPanic = fn
	}
}

// New creates an open loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		logger: slog.Default(),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn to run on the loop. It reports false, dropping fn, if the
// loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Go runs work on a new goroutine and posts the continuation it returns to
// the loop. A nil continuation posts nothing. Work must not touch loop-owned
// state; the continuation may.
func (l *Loop) Go(work func() func()) {
	l.work.Add(1)
	go func() {
		defer l.work.Done()
		if next := work(); next != nil {
			l.Post(next)
		}
	}()
}

// Step runs exactly one queued task, blocking until one is available.
// It returns ctx.Err() if ctx ends first and ErrClosed once the loop is
// closed and its queue is empty.
func (l *Loop) Step(ctx context.Context) error {
	for {
		if fn, ok := l.pop(); ok {
			l.execute(fn)
			return nil
		}
		select {
		case <-l.wake:
		case <-l.done:
			if fn, ok := l.pop(); ok {
				l.execute(fn)
				return nil
			}
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Drain runs queued tasks, including those they post, until the queue is
// empty. It does not wait for background work and returns the number of
// tasks run.
func (l *Loop) Drain() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		l.execute(fn)
		n++
	}
}

// Run drives the loop until ctx ends or the loop is closed. It returns nil
// when the loop was closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		err := l.Step(ctx)
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Call runs fn on the loop and waits for it to finish. It must not be
// called from a loop task.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// A closed loop still runs what is queued if someone drives it.
		select {
		case <-finished:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops accepting tasks. Tasks already queued can still be run by
// Step or Drain. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Wait blocks until every goroutine started with Go has returned.
func (l *Loop) Wait() {
	l.work.Wait()
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

// execute runs one task with panic recovery.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			l.logger.Error("loop task panic",
				"panic", r,
				"stack", string(stack))
			if l.onPanic != nil {
				l.onPanic(r, stack)
			}
		}
	}()
	fn()
}
