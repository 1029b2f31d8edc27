package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/element"
)

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"string", "hello", []string{"hello"}},
		{"empty string", "", []string{""}},
		{"true", true, []string{"true"}},
		{"false", false, []string{"false"}},
		{"int", 12345, []string{"12345"}},
		{"negative", int8(-3), []string{"-3"}},
		{"float", 1.5, []string{"1.5"}},
		{"nil", nil, nil},
		{"absent", element.Absent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.render(tt.value)
			if got := h.texts(); !equal(got, tt.want) {
				t.Errorf("texts = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTopLevelList(t *testing.T) {
	h := newHarness(t)
	root := h.render("a", true, 3)

	nodes := h.container.ChildNodes()
	if len(nodes) != 3 {
		t.Fatalf("ChildNodes() = %d, want 3", len(nodes))
	}
	for i, want := range []string{"a", "true", "3"} {
		if _, isElement := nodes[i].(dom.Element); isElement {
			t.Errorf("node %d is an element, want text", i)
		}
		if nodes[i].TextContent() != want {
			t.Errorf("node %d = %q, want %q", i, nodes[i].TextContent(), want)
		}
	}
	if root.Commits() != 1 {
		t.Errorf("Commits() = %d, want 1", root.Commits())
	}
}

func TestStaticComponents(t *testing.T) {
	str := func(p element.Props) element.Element { return element.Of(p["value"]) }

	h := newHarness(t)
	h.render(element.List(
		element.H(str, element.Props{"value": "hello"}),
		element.H(str, element.Props{"value": false}),
		element.H(str, element.Props{"value": 12345}),
	))

	if got, want := h.texts(), []string{"hello", "false", "12345"}; !equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestNodeClassAndStyle(t *testing.T) {
	h := newHarness(t)
	h.render(element.H("div", element.Props{
		"class": []string{"x", "y"},
		"style": map[string]string{"borderColor": "black"},
	}))

	div, ok := h.container.ChildNodes()[0].(dom.Element)
	if !ok {
		t.Fatal("first child is not an element")
	}
	if v, _ := div.GetAttribute("class"); v != "x y" {
		t.Errorf("class = %q, want %q", v, "x y")
	}
	if v, _ := div.GetAttribute("style"); v != "border-color: black" {
		t.Errorf("style = %q, want %q", v, "border-color: black")
	}
}

func TestNodeClassList(t *testing.T) {
	tests := []struct {
		name  string
		class any
		want  string
	}{
		{"strings", []string{"x", "y"}, "x y"},
		{"any", []any{"x", "y"}, "x y"},
		{"any with numbers", []any{"col", 2}, "col 2"},
		{"any with nil", []any{"x", nil, "y"}, "x y"},
		{"string", "x y", "x y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.render(element.H("div", element.Props{"class": tt.class}))
			div := h.container.ChildNodes()[0].(dom.Element)
			if v, _ := div.GetAttribute("class"); v != tt.want {
				t.Errorf("class = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestNodeStaticList(t *testing.T) {
	h := newHarness(t)
	h.render(element.H("ul",
		element.Props{"style": element.Styles("borderStyle", "solid", "borderColor", "black", "borderWidth", "1px")},
		element.H("li", element.Props{"class": []string{"primary", "selected"}}, "item 0"),
		element.H("li", element.Props{"class": "secondary"}, "item 1"),
		element.H("li", element.Props{"class": "tertiary"}, "item 2"),
	))

	ul := dom.Children(h.container)[0]
	if ul.TagName() != "ul" {
		t.Fatalf("TagName() = %q, want ul", ul.TagName())
	}
	if v, _ := ul.GetAttribute("style"); v != "border-style: solid; border-color: black; border-width: 1px" {
		t.Errorf("style = %q", v)
	}
	items := dom.Children(ul)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	wantClass := []string{"primary selected", "secondary", "tertiary"}
	for i, li := range items {
		if li.TextContent() != "item "+string(rune('0'+i)) {
			t.Errorf("item %d text = %q", i, li.TextContent())
		}
		if v, _ := li.GetAttribute("class"); v != wantClass[i] {
			t.Errorf("item %d class = %q, want %q", i, v, wantClass[i])
		}
	}
}

func TestNodeChildrenFlattenInOrder(t *testing.T) {
	h := newHarness(t)
	h.render(element.H("p", nil,
		"a",
		element.List("b", element.List("c", nil, "d")),
		element.H("em", nil, "e"),
		"f",
	))

	p := dom.Children(h.container)[0]
	var got []string
	for _, n := range p.ChildNodes() {
		got = append(got, n.TextContent())
	}
	if want := []string{"a", "b", "c", "d", "e", "f"}; !equal(got, want) {
		t.Errorf("children = %q, want %q", got, want)
	}
	if got, want := h.html(), "<p>abcd<em>e</em>f</p>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
}

func TestNodeAttributes(t *testing.T) {
	h := newHarness(t)
	h.render(element.H("input", element.Props{
		"Type":      "text",
		"maxLength": 10,
		"disabled":  true,
		"missing":   nil,
	}))

	input := dom.Children(h.container)[0]
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"type", "text", true},
		{"maxlength", "10", true},
		{"disabled", "true", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		v, ok := input.GetAttribute(tt.name)
		if ok != tt.ok || v != tt.want {
			t.Errorf("GetAttribute(%q) = %q, %v, want %q, %v", tt.name, v, ok, tt.want, tt.ok)
		}
	}
}

func TestSocketAndListeners(t *testing.T) {
	h := newHarness(t)
	var socketed dom.Element
	clicks := 0
	var keys []string

	h.render(element.H("button", element.Props{
		"socket":    func(el dom.Element) { socketed = el },
		"onClick":   func() { clicks++ },
		"onKeyDown": func(ev dom.Event) { keys = append(keys, ev.Key) },
	}, "go"))

	btn := dom.Children(h.container)[0]
	if socketed == nil || socketed.TagName() != "button" {
		t.Fatalf("socket received %v", socketed)
	}
	if _, ok := btn.GetAttribute("socket"); ok {
		t.Error("socket was set as an attribute")
	}
	if _, ok := btn.GetAttribute("onclick"); ok {
		t.Error("onClick was set as an attribute")
	}

	h.doc.Dispatch(btn, dom.Event{Type: "click"})
	h.doc.Dispatch(btn, dom.Event{Type: "keydown", Key: "Enter"})
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if len(keys) != 1 || keys[0] != "Enter" {
		t.Errorf("keys = %v", keys)
	}
}

func TestRecursiveComponent(t *testing.T) {
	var tree element.Component
	tree = func(p element.Props) element.Element {
		depth := p["depth"].(int)
		if depth == 0 {
			return element.Text("leaf")
		}
		return element.H("div", element.Props{"data-depth": depth},
			element.H(tree, element.Props{"depth": depth - 1}),
			element.H(tree, element.Props{"depth": depth - 1}),
		)
	}

	h := newHarness(t)
	h.render(element.H(tree, element.Props{"depth": 3}))

	if got := len(dom.FindAll(h.container, dom.ByTag("div"))); got != 7 {
		t.Errorf("divs = %d, want 7", got)
	}
	if got := strings.Count(h.container.TextContent(), "leaf"); got != 8 {
		t.Errorf("leaves = %d, want 8", got)
	}
}

func TestClassificationError(t *testing.T) {
	type point struct{ X, Y int }

	tests := []struct {
		name     string
		children []any
		wantType string
		wantDump string
	}{
		{
			name:     "top level",
			children: []any{point{1, 2}},
			wantType: "render.point",
			wantDump: `{"X":1,"Y":2}`,
		},
		{
			name:     "nested in node",
			children: []any{element.H("div", nil, element.H("span", nil, point{3, 4}))},
			wantType: "render.point",
			wantDump: `{"X":3,"Y":4}`,
		},
		{
			name:     "function value",
			children: []any{"ok", func() {}},
			wantType: "func()",
		},
		{
			name:     "node without tag",
			children: []any{element.Element{Kind: element.KindNode}},
			wantType: "element.Element(Node)",
		},
		{
			name:     "out of range kind",
			children: []any{element.Element{Kind: 42}},
			wantType: "element.Element(Invalid)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			old := h.doc.CreateTextNode("old")
			h.container.ReplaceChildren(old)

			root, err := Render(h.rt, h.container, tt.children...)
			if root != nil {
				t.Error("Render() returned a root on error")
			}
			var ce *ClassificationError
			if !errors.As(err, &ce) {
				t.Fatalf("Render() error = %v, want *ClassificationError", err)
			}
			if ce.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", ce.Type, tt.wantType)
			}
			if tt.wantDump != "" && ce.Dump != tt.wantDump {
				t.Errorf("Dump = %q, want %q", ce.Dump, tt.wantDump)
			}
			if got := h.texts(); !equal(got, []string{"old"}) {
				t.Errorf("container = %q, want unchanged", got)
			}
		})
	}
}

func TestClassificationErrorMountsNothing(t *testing.T) {
	h := newHarness(t)
	awaited := false
	future := element.FromFuture(element.FutureFunc(func(ctx context.Context) (element.Element, error) {
		awaited = true
		return element.Absent, nil
	}))

	_, err := Render(h.rt, h.container, future, struct{}{})
	var ce *ClassificationError
	if !errors.As(err, &ce) {
		t.Fatalf("Render() error = %v, want *ClassificationError", err)
	}
	h.loop.Wait()
	if awaited {
		t.Error("future sibling was started")
	}
	if h.loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", h.loop.Pending())
	}
}

func TestFailedMountUnmountsEarlierMembers(t *testing.T) {
	h := newHarness(t)
	started := make(chan struct{})
	future := element.Async(func(ctx context.Context) (element.Element, error) {
		close(started)
		<-ctx.Done()
		return element.Absent, ctx.Err()
	})
	bad := element.H("div", nil, struct{}{})

	if _, err := Render(h.rt, h.container, future, bad); err == nil {
		t.Fatal("Render() error = nil")
	}
	<-started
	// the await context was cancelled by the unmount, so the continuation
	// arrives and is dropped
	h.step()
	if len(h.errs) != 0 {
		t.Errorf("errors = %v, want none", h.errs)
	}
}

func TestUnmountRestoresContainer(t *testing.T) {
	h := newHarness(t)
	old := h.doc.CreateElement("span")
	old.ReplaceChildren(h.doc.CreateTextNode("before"))
	h.container.ReplaceChildren(old)

	release := make(chan struct{})
	future := element.Async(func(ctx context.Context) (element.Element, error) {
		<-release
		return element.H("div", nil, "late"), nil
	})

	root := h.render("now", future)
	if got := h.texts(); !equal(got, []string{"now"}) {
		t.Errorf("mounted texts = %q", got)
	}
	root.Unmount()
	if got, want := h.html(), "<span>before</span>"; got != want {
		t.Errorf("html after Unmount() = %s, want %s", got, want)
	}

	close(release)
	h.step()
	if got, want := h.html(), "<span>before</span>"; got != want {
		t.Errorf("html after late settle = %s, want %s", got, want)
	}
}

func TestSubscribe(t *testing.T) {
	h := newHarness(t)
	pipe := make(chan string)
	root := h.render(element.Channel(pipe))

	var commits []Commit
	cancel := root.Subscribe(func(c Commit) { commits = append(commits, c) })

	go func() { pipe <- "one" }()
	h.step()
	cancel()
	go func() { pipe <- "two" }()
	h.step()
	close(pipe)
	h.step()

	if len(commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(commits))
	}
	if commits[0].Seq != 2 || len(commits[0].Nodes) != 1 || commits[0].Nodes[0].TextContent() != "one" {
		t.Errorf("commit = %+v", commits[0])
	}
	if root.Commits() != 3 {
		t.Errorf("Commits() = %d, want 3", root.Commits())
	}
}
