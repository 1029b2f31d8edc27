package use

import (
	"context"
	"sync"
)

// Wait is a gate a component can block on until someone opens it.
//
// Open releases every goroutine currently blocked in Lock. An Open with
// nobody waiting is remembered, and the next Lock returns immediately; any
// further Opens before that Lock collapse into one.
type Wait struct {
	mu      sync.Mutex
	gate    chan struct{}
	latched bool
}

// Lock blocks until the gate is opened or ctx ends.
func (w *Wait) Lock(ctx context.Context) error {
	w.mu.Lock()
	if w.latched {
		w.latched = false
		w.mu.Unlock()
		return nil
	}
	if w.gate == nil {
		w.gate = make(chan struct{})
	}
	gate := w.gate
	w.mu.Unlock()

	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Open releases the current waiters, or latches the gate if there are none.
func (w *Wait) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gate == nil {
		w.latched = true
		return
	}
	close(w.gate)
	w.gate = nil
}
