package todo

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/deuce-x/deuce/pkg/cmp"
	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/use"
)

type props = element.Props

// Status selects entries by completion.
type Status int

const (
	StatusAll Status = iota
	StatusDone
	StatusOpen
)

// Next returns the status the filter button switches to.
func (s Status) Next() Status {
	return (s + 1) % 3
}

// Icon returns the material icon name shown for s.
func (s Status) Icon() string {
	switch s {
	case StatusDone:
		return "check_box"
	case StatusOpen:
		return "check_box_outline_blank"
	}
	return "indeterminate_check_box"
}

// Filter narrows the entries shown by List.
type Filter struct {
	Search string // lower-case substring of the text
	Status Status
}

// Match reports whether it passes the filter.
func (f Filter) Match(it Item) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(it.Text), f.Search) {
		return false
	}
	switch f.Status {
	case StatusDone:
		return it.Done
	case StatusOpen:
		return !it.Done
	}
	return true
}

// Action is a message to List. Which fields are set depends on the source
// it arrives from.
type Action struct {
	Index  int
	Text   string
	Filter Filter
}

// Group wraps its children in a div.group.
func Group(p element.Props) element.Element {
	return element.Div(props{"class": "group"}, p.Children())
}

// IconButton renders a material icon button. The "icon" prop names the
// icon; "class" is added to the icon classes; every other prop is passed
// to the button.
func IconButton(p element.Props) element.Element {
	classes := []string{"material-icons"}
	switch c := p["class"].(type) {
	case string:
		if c != "" {
			classes = append(classes, c)
		}
	case []string:
		classes = append(classes, c...)
	}
	rest := props{"class": classes}
	for k, v := range p {
		switch k {
		case "icon", "class", element.ChildrenProp:
			continue
		}
		rest[k] = v
	}
	return element.Button(rest, p.String("icon"))
}

// EntryHandlers are called from the render loop when an entry is edited.
type EntryHandlers struct {
	OnToggle func()
	OnDelete func()
	OnChange func(text string)
}

// Entry renders one item. Clicking the text opens an editor which saves on
// Enter or the save button and closes on Escape or the clear button.
func Entry(item Item, h EntryHandlers) element.Element {
	return element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		var (
			editing atomic.Bool
			update  use.Wait
		)
		toggle := func() {
			editing.Store(!editing.Load())
			update.Open()
		}
		for {
			var body element.Element
			if editing.Load() {
				body = editor(item.Text, h.OnChange, toggle)
			} else {
				body = element.Div(props{"class": "text", "onClick": toggle}, item.Text)
			}
			check := "check_box_outline_blank"
			if item.Done {
				check = "check_box"
			}
			view := element.Li(nil, element.H(Group, nil,
				element.H(IconButton, props{"icon": check, "onClick": h.OnToggle}),
				body,
				element.H(IconButton, props{"icon": "delete", "class": "danger", "onClick": h.OnDelete}),
			))
			if err := y.Yield(view); err != nil {
				return element.Absent, err
			}
			if err := update.Lock(ctx); err != nil {
				return element.Absent, err
			}
		}
	})
}

func editor(text string, onChange func(string), toggle func()) element.Element {
	link := use.NewLink()
	save := func() {
		if el, ok := plugged(link); ok && onChange != nil {
			v, _ := el.GetAttribute("value")
			onChange(v)
		}
		toggle()
	}
	return element.List(
		element.Input(props{
			"value":  text,
			"size":   1,
			"socket": link.Socket(),
			"onKeyDown": func(ev dom.Event) {
				switch ev.Key {
				case "Enter":
					save()
				case "Escape":
					toggle()
				}
			},
		}),
		element.H(IconButton, props{"icon": "save", "class": "primary", "onClick": save}),
		element.H(IconButton, props{"icon": "clear", "class": "secondary", "onClick": toggle}),
	)
}

// plugged returns the element of a link without blocking.
func plugged(l *use.Link) (dom.Element, bool) {
	if !l.Plugged() {
		return nil, false
	}
	el, err := l.Plug(context.Background())
	return el, err == nil
}

// ListProps configures List.
type ListProps struct {
	Items []Item

	// Input receives new entries in Action.Text.
	Input use.Receiver[Action]

	// Filter receives the current filter in Action.Filter.
	Filter use.Receiver[Action]

	// OnChange is called from the list's goroutine with a copy of the items
	// after every change.
	OnChange func(ctx context.Context, items []Item)
}

// List renders the filtered items and applies every action it receives,
// re-rendering after each one.
func List(p ListProps) element.Element {
	return element.Generate(func(ctx context.Context, y *element.Yielder) (element.Element, error) {
		items := slices.Clone(p.Items)
		var filter Filter

		remove := use.NewPipe[Action]()
		toggle := use.NewPipe[Action]()
		change := use.NewPipe[Action]()
		sources := map[string]use.Receiver[Action]{
			"remove": remove,
			"toggle": toggle,
			"change": change,
		}
		if p.Input != nil {
			sources["input"] = p.Input
		}
		if p.Filter != nil {
			sources["filter"] = p.Filter
		}
		mux := use.NewMux(ctx, sources)
		defer mux.Close()

		view := func() element.Element {
			entries := make([]any, 0, len(items))
			for i, it := range items {
				if !filter.Match(it) {
					continue
				}
				entries = append(entries, Entry(it, EntryHandlers{
					OnToggle: func() { _ = toggle.Send(Action{Index: i}) },
					OnDelete: func() { _ = remove.Send(Action{Index: i}) },
					OnChange: func(text string) { _ = change.Send(Action{Index: i, Text: text}) },
				}))
			}
			return element.Ul(props{"class": "items"}, entries...)
		}

		if err := y.Yield(view()); err != nil {
			return element.Absent, err
		}
		for {
			msg, err := mux.Recv(ctx)
			if errors.Is(err, use.ErrClosed) {
				return view(), nil
			}
			if err != nil {
				return element.Absent, err
			}

			changed := true
			switch a := msg.Value; msg.Type {
			case "input":
				text := strings.TrimSpace(a.Text)
				if text == "" {
					continue
				}
				items = append(items, Item{Text: text})
			case "remove":
				if a.Index < 0 || a.Index >= len(items) {
					continue
				}
				items = slices.Delete(items, a.Index, a.Index+1)
			case "toggle":
				if a.Index < 0 || a.Index >= len(items) {
					continue
				}
				items[a.Index].Done = !items[a.Index].Done
			case "change":
				if a.Index < 0 || a.Index >= len(items) {
					continue
				}
				items[a.Index].Text = a.Text
			case "filter":
				filter = a.Filter
				changed = false
			}
			if changed && p.OnChange != nil {
				p.OnChange(ctx, slices.Clone(items))
			}
			if err := y.Yield(view()); err != nil {
				return element.Absent, err
			}
		}
	})
}

// AppProps configures App.
type AppProps struct {
	Items  []Item
	Store  Store // optional; receives every change
	Logger *slog.Logger
}

// App renders the to-do application: a filter bar, the list and an input
// for new entries.
func App(p AppProps) element.Element {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := use.NewPipe[Action]()
	filters := use.NewPipe[Action]()
	statuses := use.NewPipe[Status]()
	inputLink := use.NewLink()
	searchLink := use.NewLink()

	// Only touched by listeners, which all run on the render loop.
	var filter Filter
	sendFilter := func() { _ = filters.Send(Action{Filter: filter}) }

	create := func() {
		el, ok := plugged(inputLink)
		if !ok {
			return
		}
		v, _ := el.GetAttribute("value")
		el.SetAttribute("value", "")
		if strings.TrimSpace(v) == "" {
			return
		}
		_ = input.Send(Action{Text: v})
	}
	search := func(ev dom.Event) {
		filter.Search = strings.ToLower(ev.Value)
		sendFilter()
	}
	clearSearch := func() {
		if el, ok := plugged(searchLink); ok {
			el.SetAttribute("value", "")
		}
		filter.Search = ""
		sendFilter()
	}
	cycleStatus := func() {
		filter.Status = filter.Status.Next()
		_ = statuses.Send(filter.Status)
		sendFilter()
	}

	var onChange func(context.Context, []Item)
	if p.Store != nil {
		onChange = func(ctx context.Context, items []Item) {
			if err := p.Store.Save(ctx, items); err != nil {
				logger.Error("save to-do list", "error", err)
				return
			}
			logger.Debug("to-do list saved", "items", len(items))
		}
	}

	return element.Div(props{"class": "todo"},
		element.Header(nil, element.H(Group, nil,
			cmp.Hold(StatusAll, statuses, func(s Status) element.Element {
				return element.H(IconButton, props{"icon": s.Icon(), "class": "secondary", "onClick": cycleStatus})
			}),
			element.Input(props{
				"type":        "text",
				"placeholder": "type to search for memo",
				"socket":      searchLink.Socket(),
				"onInput":     search,
			}),
			element.H(IconButton, props{"icon": "clear", "class": "danger", "onClick": clearSearch}),
		)),
		element.Main(nil, List(ListProps{
			Items:    p.Items,
			Input:    input,
			Filter:   filters,
			OnChange: onChange,
		})),
		element.Footer(nil, element.H(Group, nil,
			element.Input(props{
				"type":   "text",
				"size":   1,
				"socket": inputLink.Socket(),
				"onKeyDown": func(ev dom.Event) {
					if ev.Key == "Enter" {
						create()
					}
				},
			}),
			element.H(IconButton, props{"icon": "add", "class": "primary", "onClick": create}),
		)),
	)
}

// Load renders App once the list has been read from store.
func Load(store Store, logger *slog.Logger) element.Element {
	return element.Async(func(ctx context.Context) (element.Element, error) {
		items, err := store.Load(ctx)
		if err != nil {
			return element.Absent, err
		}
		return App(AppProps{Items: items, Store: store, Logger: logger}), nil
	})
}
