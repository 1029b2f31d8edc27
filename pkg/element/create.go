package element

import (
	"context"
	"fmt"
)

// ChildrenProp is the property under which a component receives its children.
const ChildrenProp = "children"

// Component is a static component: it returns its element synchronously.
type Component func(props Props) Element

// FutureComponent resolves its element once, asynchronously.
// Create wraps it in a one-shot Future that runs on first await.
type FutureComponent func(ctx context.Context, props Props) (Element, error)

// ActiveComponent yields a sequence of elements through y and may return a
// final element. Create wraps it in a Stream backed by a generator.
type ActiveComponent func(ctx context.Context, props Props, y *Yielder) (Element, error)

// UnsupportedComponentError is returned by Create when the component is
// neither a tag name nor an invocable component.
type UnsupportedComponentError struct {
	Type  string // Runtime type of the offending value
	Value any
}

func (e *UnsupportedComponentError) Error() string {
	if e.Type == "string" {
		return "unsupported component: empty tag name"
	}
	return fmt.Sprintf("unsupported component type %s", e.Type)
}

// Create builds an element from a tag name or a component.
//
// With a tag name it returns a node carrying props and children (a single
// child as is, several as a composite). With a component it invokes the
// component with props extended by the children and returns its result.
func Create(component any, props Props, children ...any) (Element, error) {
	switch c := component.(type) {
	case string:
		if c == "" {
			return Absent, &UnsupportedComponentError{Type: "string", Value: c}
		}
		return node(c, props, children), nil
	case Component:
		return c(withChildren(props, children)), nil
	case func(Props) Element:
		return c(withChildren(props, children)), nil
	case FutureComponent:
		p := withChildren(props, children)
		return Async(func(ctx context.Context) (Element, error) { return c(ctx, p) }), nil
	case func(context.Context, Props) (Element, error):
		p := withChildren(props, children)
		return Async(func(ctx context.Context) (Element, error) { return c(ctx, p) }), nil
	case ActiveComponent:
		p := withChildren(props, children)
		return Generate(func(ctx context.Context, y *Yielder) (Element, error) { return c(ctx, p, y) }), nil
	case func(context.Context, Props, *Yielder) (Element, error):
		p := withChildren(props, children)
		return Generate(func(ctx context.Context, y *Yielder) (Element, error) { return c(ctx, p, y) }), nil
	case func(Props) any:
		return Of(c(withChildren(props, children))), nil
	}
	return Absent, &UnsupportedComponentError{Type: fmt.Sprintf("%T", component), Value: component}
}

// H is like Create but panics if the component is unsupported.
// It simplifies writing literal trees.
func H(component any, props Props, children ...any) Element {
	e, err := Create(component, props, children...)
	if err != nil {
		panic(err)
	}
	return e
}

// Children returns the children passed to a component.
func (p Props) Children() Element {
	if p == nil {
		return Absent
	}
	return Of(p[ChildrenProp])
}

// String returns the string value of a property, or "" if missing.
func (p Props) String(key string) string {
	if p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		if text, ok := primitiveText(v); ok {
			return text
		}
		return fmt.Sprint(v)
	}
}

func node(tag string, props Props, children []any) Element {
	e := Element{Kind: KindNode, Tag: tag, Props: props}
	switch len(children) {
	case 0:
	case 1:
		child := Of(children[0])
		e.Children = &child
	default:
		list := List(children...)
		e.Children = &list
	}
	return e
}

// withChildren copies props and adds the children. An explicit children
// property takes precedence.
func withChildren(props Props, children []any) Props {
	p := make(Props, len(props)+1)
	items := make([]Element, 0, len(children))
	for _, child := range children {
		items = append(items, Of(child))
	}
	p[ChildrenProp] = items
	for k, v := range props {
		p[k] = v
	}
	return p
}
