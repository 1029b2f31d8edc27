// Package dom defines the document target the renderer mutates and provides
// an in-memory implementation of it.
//
// The renderer only needs a small surface: creating elements and text
// nodes, setting attributes, registering event listeners and replacing the
// children of an element wholesale. Any host tree that offers these
// operations can implement Document and Element.
//
// Memory is the in-memory document used by tests, the CLI and the
// inspector. It stores golang.org/x/net/html nodes, so a tree can be
// serialized with OuterHTML or InnerHTML, and events can be simulated with
// Dispatch:
//
//	doc := dom.NewMemory()
//	btn, _ := dom.Find(doc.Body(), dom.ByTag("button"))
//	doc.Dispatch(btn, dom.Event{Type: "click"})
package dom
