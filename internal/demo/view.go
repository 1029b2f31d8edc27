package demo

import (
	"context"
	"errors"

	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/use"
)

func init() {
	Register(Demo{Name: "view", Description: "A view stack navigated through a pipe, held by one stream", Build: viewStack})
}

// View renders one screen. It navigates through nav.
type View func(nav Navigator) element.Element

// Route is a navigation request: a view to push, or Back.
type Route struct {
	View View
	Back bool
}

// Navigator sends navigation requests.
type Navigator func(Route)

// MainView is the bottom of the stack.
func MainView(nav Navigator) element.Element {
	return element.Button(props{"onClick": func() { nav(Route{View: SecondaryView(1)}) }}, "go to secondary")
}

// SecondaryView is a screen depth levels above MainView.
func SecondaryView(depth int) View {
	return func(nav Navigator) element.Element {
		return element.Div(nil,
			element.P(nil, "secondary view ", depth),
			element.Button(props{"onClick": func() { nav(Route{View: SecondaryView(depth + 1)}) }}, "go deeper"),
			element.Button(props{"onClick": func() { nav(Route{Back: true}) }}, "go back"),
		)
	}
}

// Navigation renders the view on top of a stack driven by routes. The stack
// lives in the stream's own scope; a Back on the bottom view is ignored.
func Navigation(routes *use.Pipe[Route], start View) element.Element {
	nav := func(r Route) { _ = routes.Send(r) }
	return element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		var stack []View
		current := start
		for {
			if err := y.Yield(current(nav)); err != nil {
				return element.Absent, err
			}
			r, err := routes.Recv(ctx)
			if errors.Is(err, use.ErrClosed) {
				return element.Absent, nil
			}
			if err != nil {
				return element.Absent, err
			}
			switch {
			case r.Back && len(stack) > 0:
				current = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			case r.Back:
			case r.View != nil:
				stack = append(stack, current)
				current = r.View
			}
		}
	})
}

func viewStack(env Env) []any {
	return []any{Navigation(use.NewPipe[Route](), MainView)}
}
