// Package use provides coordination primitives for component authors.
//
// Every primitive is a per-instance object owned by the component that
// created it:
//
//   - Event is a subscribe/emit registry.
//   - Wait is a gate a stream body blocks on until an event opens it.
//   - Pipe is an unbounded FIFO connecting listeners to stream bodies.
//   - Mux merges named pipes into one pipe of tagged values.
//   - Link hands a node's document element to asynchronous code.
//
// The renderer never sees these types. Components turn them into the
// Future and Stream elements it consumes:
//
//	clicks := use.NewPipe[dom.Event]()
//	element.Button(element.Props{"onClick": func(ev dom.Event) { clicks.Send(ev) }}, "+")
package use
