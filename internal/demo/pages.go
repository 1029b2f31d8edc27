package demo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/deuce-x/deuce/internal/todo"
	"github.com/deuce-x/deuce/pkg/cmp"
	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/use"
)

type props = element.Props

func init() {
	Register(Demo{Name: "hello", Description: "Primitives, intrinsic elements, static components, fragments and lists", Build: hello})
	Register(Demo{Name: "futures", Description: "Future components and state streamed into a static component", Build: futures})
	Register(Demo{Name: "active", Description: "Active components driven by timers, waits, pipes, events and links", Build: active})
	Register(Demo{Name: "recursive", Description: "A component that renders itself", Build: recursive})
	Register(Demo{Name: "todo", Description: "The to-do list application", Build: todoApp})
}

// delay waits for d or until ctx ends.
func delay(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Greeting is a static component.
func Greeting(p element.Props) element.Element {
	return element.Div(nil, "hello, ", p.String("to"), "!")
}

func hello(env Env) []any {
	return []any{
		"i am just a string ",
		true, false,
		1, 2, 3, 4,
		element.Div(nil, "i am intrinsic component's child"),
		element.H(Greeting, props{"to": "world"}),
		element.H(cmp.Fragment, nil,
			element.Div(nil, "first in fragment"),
			element.Div(nil, "second in fragment"),
			element.Div(nil, "third in fragment"),
		),
		[]any{
			element.Div(nil, "first in array"),
			element.Div(nil, "second in array"),
			element.Div(nil, "third in array"),
		},
		element.Div(props{"style": map[string]string{"fontWeight": "bold", "marginTop": "1em"}, "class": []string{"note", "last"}},
			"styled with a map"),
	}
}

func futures(env Env) []any {
	tick := env.tick()

	// Delayed echoes its children once a tick has passed.
	delayed := func(ctx context.Context, p element.Props) (element.Element, error) {
		if err := delay(ctx, tick); err != nil {
			return element.Absent, err
		}
		return element.Div(nil, p.Children()), nil
	}

	// state yields "me" and later finishes with "you".
	state := func() element.Element {
		return element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
			if err := y.Yield(element.H(Greeting, props{"to": "me"})); err != nil {
				return element.Absent, err
			}
			if err := delay(ctx, 5*tick); err != nil {
				return element.Absent, err
			}
			return element.H(Greeting, props{"to": "you"}), nil
		})
	}

	return []any{
		element.H(delayed, nil, "hello from future"),
		element.Div(nil, element.Resolved("already resolved")),
		element.Div(nil, state()),
	}
}

func active(env Env) []any {
	tick := env.tick()
	logger := env.logger()

	counter := func(ctx context.Context, p element.Props, y *element.Yielder) (element.Element, error) {
		for i := 0; i < 10; i++ {
			parity := "even"
			if i%2 == 1 {
				parity = "odd"
			}
			if err := y.Yield(element.Div(nil, i, " is ", parity)); err != nil {
				return element.Absent, err
			}
			if err := delay(ctx, tick); err != nil {
				return element.Absent, err
			}
		}
		return element.Div(nil, "what are the odds?.. or evens?"), nil
	}

	// A link hands the input element to the button's listener.
	link := use.NewLink()
	readInput := func() {
		if !link.Plugged() {
			return
		}
		el, _ := link.Plug(context.Background())
		v, _ := el.GetAttribute("value")
		logger.Info("you have entered", "value", v)
	}

	// A wait wakes the click counter.
	var clicked use.Wait
	clicks := element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		for n := 0; ; n++ {
			if err := y.Yield(fmt.Sprintf("clicks so far: %d", n)); err != nil {
				return element.Absent, err
			}
			if err := clicked.Lock(ctx); err != nil {
				return element.Absent, err
			}
		}
	})

	// An event is delivered to every subscriber.
	var alerts use.Event[string]
	received := use.NewPipe[string]()
	alerts.Subscribe(func(msg string) {
		logger.Info("alert received", "message", msg)
		_ = received.Send(msg)
	})

	// A pipe turns clicks into state.
	events := use.NewPipe[struct{}]()
	listener := element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		n := 0
		for range events.Values(ctx) {
			n++
			if err := y.Yield(fmt.Sprintf("received %d events so far", n)); err != nil {
				return element.Absent, err
			}
		}
		return element.Absent, ctx.Err()
	})

	// A managed component re-renders when its wait is opened.
	var (
		managed use.Wait
		count   atomic.Int64
	)
	managedView := element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		for {
			if err := y.Yield(fmt.Sprintf("i counted till %d", count.Load())); err != nil {
				return element.Absent, err
			}
			if err := managed.Lock(ctx); err != nil {
				return element.Absent, err
			}
		}
	})
	return []any{
		element.Div(props{"class": "counter"}, element.H(counter, nil)),
		element.Div(props{"class": "link"},
			element.Input(props{"socket": link.Socket()}),
			element.Button(props{"onClick": readInput}, "get input"),
		),
		element.Div(props{"class": "wait"},
			clicks,
			element.Button(props{"onClick": clicked.Open}, "click!"),
		),
		element.Div(props{"class": "event"},
			element.Button(props{"onClick": func() { alerts.Emit("achtung!") }}, "alert me!"),
			cmp.State[string](received, func(msg string) element.Element {
				return element.Span(nil, "last alert: ", msg)
			}),
		),
		element.Div(props{"class": "pipe"},
			element.Button(props{"onClick": func() { _ = events.Send(struct{}{}) }}, "generate pipe event"),
			listener,
		),
		element.Div(props{"class": "managed"},
			managedView,
			element.Button(props{"onClick": func() {
				count.Add(1)
				managed.Open()
			}}, "increment managed state"),
		),
	}
}

// Tree renders a node labelled with its depth and, below the given depth,
// two copies of itself.
func Tree(p element.Props) element.Element {
	depth, _ := p["depth"].(int)
	label, _ := p["label"].(string)
	if label == "" {
		label = "root"
	}
	if depth <= 0 {
		return element.Li(props{"class": "leaf"}, label)
	}
	return element.Li(nil, label,
		element.Ul(nil,
			element.H(Tree, props{"depth": depth - 1, "label": label + ".0"}),
			element.H(Tree, props{"depth": depth - 1, "label": label + ".1"}),
		),
	)
}

func recursive(env Env) []any {
	return []any{element.Ul(props{"class": "tree"}, element.H(Tree, props{"depth": 3}))}
}

func todoApp(env Env) []any {
	store := env.Store
	if store == nil {
		store = todo.NewMemoryStore()
	}
	return []any{todo.Load(store, env.logger())}
}
