// Package element provides the element model for deuce.
//
// An Element is the declarative description a component returns before any
// document node exists. It is a closed tagged union; the Kind is assigned
// when the element is constructed, never guessed from its shape later.
//
// # Kinds
//
//   - KindAbsent: no content (the zero Element)
//   - KindPrimitive: text, number or boolean, rendered as a text node
//   - KindNode: a tag with props and children
//   - KindComposite: an ordered list of elements (arrays and fragments)
//   - KindFuture: a one-shot asynchronous element (Future)
//   - KindStream: a long-lived asynchronous sequence of elements (Stream)
//
// Values that match none of these become KindUnknown and are rejected by
// the renderer with the offending type and a dump of the value.
//
// # Constructing Elements
//
// Create (and its panicking twin H) takes a tag name or a component:
//
//	H("ul", Props{"class": []string{"list"}},
//	    H("li", nil, "item 0"),
//	    H(Item, Props{"id": 1}),
//	)
//
// Components declare their kind through their type: Component is static,
// FutureComponent resolves once, ActiveComponent yields through a Yielder:
//
//	var Counter ActiveComponent = func(ctx context.Context, p Props, y *Yielder) (Element, error) {
//	    for i := 0; i < 3; i++ {
//	        if err := y.Yield(i); err != nil {
//	            return Absent, err
//	        }
//	    }
//	    return Text("done"), nil
//	}
//
// # Props
//
// Node props follow a few conventions: "socket" receives the created
// document element, "on<Event>" registers an event listener, "class" accepts
// a string or []string and "style" accepts a Style or a map of camelCase
// properties.
package element
