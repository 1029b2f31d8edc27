package use

import (
	"context"
	"sync"

	"github.com/deuce-x/deuce/pkg/dom"
)

// Link hands the document element created for a node to code waiting for
// it. Pass Socket as the node's "socket" prop and Plug from a Future or
// Stream body.
type Link struct {
	once  sync.Once
	ready chan struct{}
	el    dom.Element
}

// NewLink creates an unplugged link.
func NewLink() *Link {
	return &Link{ready: make(chan struct{})}
}

// Socket returns the callback for the "socket" prop. Only the first element
// it receives is kept.
func (l *Link) Socket() func(dom.Element) {
	return func(el dom.Element) {
		l.once.Do(func() {
			l.el = el
			close(l.ready)
		})
	}
}

// Plug blocks until the socket received an element or ctx ends.
// The element must only be mutated from the render loop.
func (l *Link) Plug(ctx context.Context) (dom.Element, error) {
	select {
	case <-l.ready:
		return l.el, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Plugged reports whether the socket has received an element.
func (l *Link) Plugged() bool {
	select {
	case <-l.ready:
		return true
	default:
		return false
	}
}
