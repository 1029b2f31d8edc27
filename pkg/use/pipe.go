package use

import (
	"context"
	"errors"
	"iter"
	"sync"
)

// ErrClosed is returned by Send on a closed pipe and by Recv once a closed
// pipe has been drained.
var ErrClosed = errors.New("use: pipe closed")

// Receiver is the read side of a pipe.
type Receiver[T any] interface {
	Recv(ctx context.Context) (T, error)
}

// Pipe is an unbounded FIFO of values. Send never blocks, so it is safe to
// call from an event listener running on the render loop.
// The zero value is ready to use.
type Pipe[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
	ready  chan struct{}
}

// NewPipe creates an empty pipe.
func NewPipe[T any]() *Pipe[T] {
	return &Pipe[T]{}
}

// Send appends v to the pipe.
func (p *Pipe[T]) Send(v T) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.queue = append(p.queue, v)
	p.signal()
	return nil
}

// Recv removes and returns the oldest value, blocking until one is
// available, the pipe is closed and empty, or ctx ends.
func (p *Pipe[T]) Recv(ctx context.Context) (T, error) {
	for {
		p.mu.Lock()
		if len(p.queue) > 0 {
			v := p.queue[0]
			var zero T
			p.queue[0] = zero
			p.queue = p.queue[1:]
			p.mu.Unlock()
			return v, nil
		}
		if p.closed {
			p.mu.Unlock()
			var zero T
			return zero, ErrClosed
		}
		if p.ready == nil {
			p.ready = make(chan struct{})
		}
		ready := p.ready
		p.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Close stops the pipe. Values already sent can still be received.
func (p *Pipe[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.signal()
}

// Len returns the number of values waiting to be received.
func (p *Pipe[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Values returns an iterator over received values. It stops when the pipe
// is closed and drained or ctx ends.
func (p *Pipe[T]) Values(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := p.Recv(ctx)
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// signal wakes blocked receivers. Callers hold p.mu.
func (p *Pipe[T]) signal() {
	if p.ready != nil {
		close(p.ready)
		p.ready = nil
	}
}
