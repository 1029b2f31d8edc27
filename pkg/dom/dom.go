package dom

// Node is a node of a live document tree.
type Node interface {
	// TextContent returns the concatenated text of the node and its descendants.
	TextContent() string
}

// Element is a document element: a node with a tag, attributes, event
// listeners and children.
type Element interface {
	Node

	// TagName returns the lower-case tag name.
	TagName() string

	// SetAttribute sets or replaces an attribute.
	SetAttribute(name, value string)

	// GetAttribute returns an attribute value and whether it is present.
	GetAttribute(name string) (string, bool)

	// AddEventListener registers a listener for an event type.
	AddEventListener(event string, l Listener)

	// ReplaceChildren removes every child and appends the given nodes in
	// order. Nodes that already have a parent are moved.
	ReplaceChildren(children ...Node)

	// ChildNodes returns the current children, text nodes included.
	ChildNodes() []Node
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(data string) Node
}

// Event is delivered to listeners.
type Event struct {
	Type   string  // Lower-case event type, e.g. "click"
	Target Element // Element the event was dispatched on
	Key    string  // Keyboard events: key name, e.g. "Enter"
	Value  string  // Input events: current value of the target
}

// Listener handles an event.
type Listener func(Event)
