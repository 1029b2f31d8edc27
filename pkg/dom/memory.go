package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Memory is an in-memory Document whose nodes are golang.org/x/net/html
// nodes. It is not safe for concurrent use; callers serialize access, which
// the render loop does by construction.
type Memory struct {
	root      *html.Node
	body      *html.Node
	listeners map[*html.Node]map[string][]Listener
}

// NewMemory creates an empty document with an <html><body> skeleton.
func NewMemory() *Memory {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := newElementNode("html")
	body := newElementNode("body")
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(body)
	return &Memory{
		root:      root,
		body:      body,
		listeners: make(map[*html.Node]map[string][]Listener),
	}
}

// Body returns the <body> element.
func (d *Memory) Body() Element {
	return d.element(d.body)
}

// CreateElement implements Document.
func (d *Memory) CreateElement(tag string) Element {
	return d.element(newElementNode(tag))
}

// CreateTextNode implements Document.
func (d *Memory) CreateTextNode(data string) Node {
	return memText{doc: d, n: &html.Node{Type: html.TextNode, Data: data}}
}

// Dispatch delivers ev to the listeners of target and then of each of its
// ancestors, in order. It returns the number of listeners invoked.
func (d *Memory) Dispatch(target Element, ev Event) int {
	n, ok := target.(memElement)
	if !ok || n.doc != d {
		return 0
	}
	ev.Type = strings.ToLower(ev.Type)
	ev.Target = target
	if ev.Value != "" || formControls[n.n.Data] {
		n.SetAttribute("value", ev.Value)
	}
	invoked := 0
	for cur := n.n; cur != nil; cur = cur.Parent {
		// Copy so a listener can register more without affecting this dispatch.
		ls := append([]Listener(nil), d.listeners[cur][ev.Type]...)
		for _, l := range ls {
			l(ev)
			invoked++
		}
	}
	return invoked
}

// formControls are the tags whose value attribute mirrors Event.Value.
var formControls = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
}

// ListenerCount returns the number of listeners registered on e for event.
func (d *Memory) ListenerCount(e Element, event string) int {
	n, ok := e.(memElement)
	if !ok {
		return 0
	}
	return len(d.listeners[n.n][strings.ToLower(event)])
}

func (d *Memory) element(n *html.Node) memElement {
	return memElement{doc: d, n: n}
}

func (d *Memory) wrap(n *html.Node) Node {
	if n.Type == html.ElementNode {
		return d.element(n)
	}
	return memText{doc: d, n: n}
}

// forget drops the listeners of a detached subtree.
func (d *Memory) forget(n *html.Node) {
	if len(d.listeners) == 0 {
		return
	}
	delete(d.listeners, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func newElementNode(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// backed is implemented by nodes of a Memory document.
type backed interface {
	htmlNode() *html.Node
}

type memText struct {
	doc *Memory
	n   *html.Node
}

func (t memText) TextContent() string { return t.n.Data }

func (t memText) htmlNode() *html.Node { return t.n }

func (t memText) String() string { return fmt.Sprintf("#text %q", t.n.Data) }

type memElement struct {
	doc *Memory
	n   *html.Node
}

func (e memElement) htmlNode() *html.Node { return e.n }

func (e memElement) String() string { return "<" + e.n.Data + ">" }

// TagName implements Element.
func (e memElement) TagName() string {
	return e.n.Data
}

// TextContent implements Node.
func (e memElement) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

// SetAttribute implements Element.
func (e memElement) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i := range e.n.Attr {
		if e.n.Attr[i].Key == name && e.n.Attr[i].Namespace == "" {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// GetAttribute implements Element.
func (e memElement) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.n.Attr {
		if a.Key == name && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

// AddEventListener implements Element.
func (e memElement) AddEventListener(event string, l Listener) {
	if l == nil {
		return
	}
	event = strings.ToLower(event)
	byType := e.doc.listeners[e.n]
	if byType == nil {
		byType = make(map[string][]Listener)
		e.doc.listeners[e.n] = byType
	}
	byType[event] = append(byType[event], l)
}

// ReplaceChildren implements Element. It panics if a node belongs to
// another document. Previous children that end up detached lose their
// listeners, along with their descendants.
func (e memElement) ReplaceChildren(children ...Node) {
	var removed []*html.Node
	for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
		e.n.RemoveChild(c)
		removed = append(removed, c)
	}
	for _, child := range children {
		b, ok := child.(backed)
		if !ok {
			panic(fmt.Sprintf("dom: node %T does not belong to this document", child))
		}
		hn := b.htmlNode()
		if hn.Parent != nil {
			hn.Parent.RemoveChild(hn)
		}
		e.n.AppendChild(hn)
	}
	for _, old := range removed {
		if old.Parent == nil {
			e.doc.forget(old)
		}
	}
}

// ChildNodes implements Element.
func (e memElement) ChildNodes() []Node {
	var out []Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, e.doc.wrap(c))
	}
	return out
}
