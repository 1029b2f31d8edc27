package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Render writes the HTML serialization of a Memory node to w.
func Render(w io.Writer, n Node) error {
	b, ok := n.(backed)
	if !ok {
		_, err := io.WriteString(w, html.EscapeString(n.TextContent()))
		return err
	}
	return html.Render(w, b.htmlNode())
}

// OuterHTML returns the HTML serialization of n, including n itself.
// Serialization errors truncate the output.
func OuterHTML(n Node) string {
	var b strings.Builder
	_ = Render(&b, n)
	return b.String()
}

// InnerHTML returns the serialization of the children of e.
func InnerHTML(e Element) string {
	var b strings.Builder
	for _, c := range e.ChildNodes() {
		if err := Render(&b, c); err != nil {
			break
		}
	}
	return b.String()
}

// Children returns the element children of e, skipping text nodes.
func Children(e Element) []Element {
	var out []Element
	for _, c := range e.ChildNodes() {
		if el, ok := c.(Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// At follows a path of element-child indexes from root. Text nodes are not
// counted, so paths computed on a parsed serialization of the tree resolve to
// the same elements.
func At(root Element, path []int) (Element, bool) {
	cur := root
	for _, i := range path {
		kids := Children(cur)
		if i < 0 || i >= len(kids) {
			return nil, false
		}
		cur = kids[i]
	}
	return cur, true
}

// Find returns the first element below root, in document order, for which
// match returns true. Root itself is not considered.
func Find(root Element, match func(Element) bool) (Element, bool) {
	for _, c := range Children(root) {
		if match(c) {
			return c, true
		}
		if found, ok := Find(c, match); ok {
			return found, true
		}
	}
	return nil, false
}

// FindAll returns every element below root for which match returns true.
func FindAll(root Element, match func(Element) bool) []Element {
	var out []Element
	for _, c := range Children(root) {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, FindAll(c, match)...)
	}
	return out
}

// ByTag matches elements with the given tag name.
func ByTag(tag string) func(Element) bool {
	tag = strings.ToLower(tag)
	return func(e Element) bool { return e.TagName() == tag }
}

// ByText matches elements whose text content equals text.
func ByText(text string) func(Element) bool {
	return func(e Element) bool { return e.TextContent() == text }
}

// ByAttr matches elements whose attribute name has the given value.
func ByAttr(name, value string) func(Element) bool {
	return func(e Element) bool {
		v, ok := e.GetAttribute(name)
		return ok && v == value
	}
}
