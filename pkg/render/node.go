package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/element"
)

// SocketProp is the reserved prop receiving the created document element.
const SocketProp = "socket"

// nodeSlot renders a tagged element. It reports exactly once; later
// changes of its children replace the element's child nodes in place.
type nodeSlot struct {
	rt    *Runtime
	el    element.Element
	node  dom.Element
	child Slot
}

func (s *nodeSlot) Mount(report Report) error {
	node := s.rt.doc.CreateElement(s.el.Tag)
	applyProps(node, s.el.Props)

	if s.el.Children != nil {
		child, err := s.rt.Classify(*s.el.Children)
		if err != nil {
			return err
		}
		if err := child.Mount(func(nodes []dom.Node) {
			node.ReplaceChildren(nodes...)
		}); err != nil {
			return err
		}
		s.child = child
	}

	s.node = node
	s.rt.metrics.mount(element.KindNode)
	s.rt.metrics.report(element.KindNode)
	report([]dom.Node{node})
	return nil
}

func (s *nodeSlot) Unmount() {
	if s.node == nil {
		return
	}
	if s.child != nil {
		s.child.Unmount()
		s.child = nil
	}
	s.rt.metrics.unmount(element.KindNode)
}

func (s *nodeSlot) Kind() element.Kind { return element.KindNode }

// applyProps sets props on node in key order:
//
//   - socket with a func(dom.Element) is called with node
//   - on<Event> with a function registers a listener for "event"
//   - class with a []string or []any is joined with spaces
//   - style with a style value is serialized as CSS declarations
//   - anything else becomes a lower-cased attribute
//
// Nil values are skipped.
func applyProps(node dom.Element, props element.Props) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := props[name]
		if value == nil {
			continue
		}
		switch {
		case name == SocketProp:
			if fn, ok := value.(func(dom.Element)); ok {
				fn(node)
				continue
			}
		case name == "class":
			if list, ok := classList(value); ok {
				node.SetAttribute("class", strings.Join(list, " "))
				continue
			}
		case name == "style":
			if style, ok := element.StyleOf(value); ok {
				node.SetAttribute("style", style.String())
				continue
			}
		case isEventProp(name):
			if l, ok := listener(value); ok {
				node.AddEventListener(strings.ToLower(name[2:]), l)
				continue
			}
		}
		node.SetAttribute(strings.ToLower(name), attrValue(value))
	}
}

// isEventProp matches on[A-Z]...
func isEventProp(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && name[2] >= 'A' && name[2] <= 'Z'
}

func listener(v any) (dom.Listener, bool) {
	switch fn := v.(type) {
	case dom.Listener:
		return fn, true
	case func(dom.Event):
		return fn, true
	case func():
		return func(dom.Event) { fn() }, true
	}
	return nil, false
}

// classList accepts []string, or []any whose items are rendered as text.
// Absent items are dropped.
func classList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if e := element.Of(item); e.Kind == element.KindPrimitive {
				out = append(out, e.Text)
			} else if !e.IsAbsent() {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out, true
	}
	return nil, false
}

func attrValue(v any) string {
	if e := element.Of(v); e.Kind == element.KindPrimitive {
		return e.Text
	}
	return fmt.Sprint(v)
}
