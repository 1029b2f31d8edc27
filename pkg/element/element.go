package element

import (
	"fmt"
	"strconv"
)

// Kind is the element shape discriminator.
type Kind uint8

const (
	KindAbsent    Kind = iota // No content (zero value)
	KindPrimitive             // Text, number or boolean
	KindNode                  // Tagged element with props and children
	KindComposite             // Ordered list (arrays and fragments)
	KindFuture                // One-shot asynchronous value
	KindStream                // Long-lived asynchronous sequence
	KindUnknown               // Value that matched no shape
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"
	case KindPrimitive:
		return "Primitive"
	case KindNode:
		return "Node"
	case KindComposite:
		return "Composite"
	case KindFuture:
		return "Future"
	case KindStream:
		return "Stream"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Element is the declarative description of what to render.
// The zero Element is Absent.
type Element struct {
	Kind     Kind     // Shape discriminator
	Tag      string   // KindNode: tag name
	Props    Props    // KindNode: attributes, handlers, socket
	Children *Element // KindNode: single child or Composite, nil for none
	Items    []Element
	Text     string // KindPrimitive: canonical string form
	Value    any    // KindPrimitive: original value; KindUnknown: offending value
	Future   Future // KindFuture
	Stream   Stream // KindStream
}

// Props holds attributes, event handlers and the socket callback of a node,
// or the properties passed to a component.
type Props map[string]any

// Absent is the element that renders nothing.
var Absent = Element{}

// IsAbsent returns true for the Absent element.
func (e Element) IsAbsent() bool {
	return e.Kind == KindAbsent
}

// Text creates a primitive text element.
func Text(content string) Element {
	return Element{Kind: KindPrimitive, Text: content, Value: content}
}

// Textf creates a formatted text element.
func Textf(format string, args ...any) Element {
	return Text(fmt.Sprintf(format, args...))
}

// List creates a composite of the given children.
// Each child is converted with Of.
func List(children ...any) Element {
	items := make([]Element, 0, len(children))
	for _, child := range children {
		items = append(items, Of(child))
	}
	return Element{Kind: KindComposite, Items: items}
}

// FromFuture wraps a Future.
func FromFuture(f Future) Element {
	return Element{Kind: KindFuture, Future: f}
}

// FromStream wraps a Stream.
func FromStream(s Stream) Element {
	return Element{Kind: KindStream, Stream: s}
}

// Of converts an arbitrary Go value into an Element.
//
// nil becomes Absent, strings, booleans and numbers become primitives,
// slices become composites, Future and Stream values keep their kind.
// Any other value yields a KindUnknown element which the classifier rejects.
func Of(v any) Element {
	switch x := v.(type) {
	case nil:
		return Absent
	case Element:
		return x
	case *Element:
		if x == nil {
			return Absent
		}
		return *x
	case []Element:
		items := make([]Element, len(x))
		copy(items, x)
		return Element{Kind: KindComposite, Items: items}
	case []any:
		return List(x...)
	case []string:
		items := make([]Element, 0, len(x))
		for _, s := range x {
			items = append(items, Text(s))
		}
		return Element{Kind: KindComposite, Items: items}
	case Stream:
		return FromStream(x)
	case Future:
		return FromFuture(x)
	}
	if text, ok := primitiveText(v); ok {
		return Element{Kind: KindPrimitive, Text: text, Value: v}
	}
	return Element{Kind: KindUnknown, Value: v}
}

// primitiveText returns the canonical string form of a primitive value.
func primitiveText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// If returns the element if condition is true, Absent otherwise.
func If(condition bool, e Element) Element {
	if condition {
		return e
	}
	return Absent
}

// IfElse returns the first element if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse Element) Element {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Range maps a slice to a composite.
func Range[T any](items []T, fn func(item T, index int) Element) Element {
	result := make([]Element, 0, len(items))
	for i, item := range items {
		result = append(result, fn(item, i))
	}
	return Element{Kind: KindComposite, Items: result}
}
