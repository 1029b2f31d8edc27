package use

import "sync"

// Event is a registry of handlers for values of type T.
// The zero value is ready to use.
type Event[T any] struct {
	mu       sync.Mutex
	next     uint64
	handlers []handler[T]
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe adds fn to the registry and returns a function that removes it.
// The returned function is idempotent.
func (e *Event[T]) Subscribe(fn func(T)) (cancel func()) {
	e.mu.Lock()
	e.next++
	id := e.next
	e.handlers = append(e.handlers, handler[T]{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler subscribed at the time of the call, in
// subscription order, on the calling goroutine.
func (e *Event[T]) Emit(v T) {
	e.mu.Lock()
	hs := make([]handler[T], len(e.handlers))
	copy(hs, e.handlers)
	e.mu.Unlock()

	for _, h := range hs {
		h.fn(v)
	}
}

// Len returns the number of subscribed handlers.
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}
