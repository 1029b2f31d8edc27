package use

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Tagged is a value together with the name of the source it came from.
type Tagged[T any] struct {
	Type  string
	Value T
}

// Mux merges several named sources into one pipe of tagged values.
type Mux[T any] struct {
	out    *Pipe[Tagged[T]]
	cancel context.CancelFunc
	group  *errgroup.Group

	once sync.Once
	mu   sync.Mutex
	err  error
}

// NewMux starts forwarding every source into the mux. Forwarding stops when
// ctx ends, Close is called, all sources are closed, or a source fails; the
// output pipe is closed in every case. A source failure is returned by Recv
// once the values already forwarded are drained.
func NewMux[T any](ctx context.Context, sources map[string]Receiver[T]) *Mux[T] {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	m := &Mux[T]{out: NewPipe[Tagged[T]](), cancel: cancel, group: g}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		src := sources[name]
		g.Go(func() error {
			for {
				v, err := src.Recv(gctx)
				if errors.Is(err, ErrClosed) || (err != nil && err == gctx.Err()) {
					return nil
				}
				if err != nil {
					return err
				}
				if err := m.out.Send(Tagged[T]{Type: name, Value: v}); err != nil {
					return err
				}
			}
		})
	}
	go m.wait()
	return m
}

// wait records the first forwarder error and closes the output.
func (m *Mux[T]) wait() {
	err := m.group.Wait()
	m.once.Do(func() {
		m.mu.Lock()
		m.err = err
		m.mu.Unlock()
		m.out.Close()
	})
}

// Recv implements Receiver. After the output is drained it returns the
// error of the source that failed, or ErrClosed.
func (m *Mux[T]) Recv(ctx context.Context) (Tagged[T], error) {
	v, err := m.out.Recv(ctx)
	if errors.Is(err, ErrClosed) {
		if ferr := m.Err(); ferr != nil {
			return v, ferr
		}
	}
	return v, err
}

// Err returns the error that stopped forwarding, if any.
func (m *Mux[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Close stops forwarding and waits for the forwarders to return.
func (m *Mux[T]) Close() {
	m.cancel()
	m.wait()
}

// EventMux merges several named events into one registry of tagged values.
type EventMux[T any] struct {
	out    Event[Tagged[T]]
	mu     sync.Mutex
	detach []func()
}

// MuxEvents subscribes to every source at once; values emitted before any
// handler subscribes to the mux are dropped.
func MuxEvents[T any](sources map[string]*Event[T]) *EventMux[T] {
	m := &EventMux[T]{}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m.detach = append(m.detach, sources[name].Subscribe(func(v T) {
			m.out.Emit(Tagged[T]{Type: name, Value: v})
		}))
	}
	return m
}

// Subscribe adds fn to the mux. The returned function removes fn and
// detaches the mux from its sources.
func (m *EventMux[T]) Subscribe(fn func(Tagged[T])) (cancel func()) {
	remove := m.out.Subscribe(fn)
	return func() {
		remove()
		m.Close()
	}
}

// Close detaches the mux from its sources. It is idempotent.
func (m *EventMux[T]) Close() {
	m.mu.Lock()
	detach := m.detach
	m.detach = nil
	m.mu.Unlock()
	for _, fn := range detach {
		fn()
	}
}
