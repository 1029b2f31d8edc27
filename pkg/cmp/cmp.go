// Package cmp contains small reusable components.
package cmp

import (
	"context"
	"errors"

	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/use"
)

// Fragment renders its children without a wrapping node.
func Fragment(props element.Props) element.Element {
	return props.Children()
}

// State renders child for every value received from src, replacing the
// previous rendering each time. When src is closed the last rendering stays.
func State[T any](src use.Receiver[T], child func(T) element.Element) element.Element {
	return element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		for {
			v, err := src.Recv(ctx)
			if errors.Is(err, use.ErrClosed) {
				return element.Absent, nil
			}
			if err != nil {
				return element.Absent, err
			}
			if err := y.Yield(child(v)); err != nil {
				return element.Absent, err
			}
		}
	})
}

// Hold renders initial, then child for every value received from src.
func Hold[T any](initial T, src use.Receiver[T], child func(T) element.Element) element.Element {
	return element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		if err := y.Yield(child(initial)); err != nil {
			return element.Absent, err
		}
		for {
			v, err := src.Recv(ctx)
			if errors.Is(err, use.ErrClosed) {
				return child(initial), nil
			}
			if err != nil {
				return element.Absent, err
			}
			initial = v
			if err := y.Yield(child(v)); err != nil {
				return element.Absent, err
			}
		}
	})
}
