package render

import (
	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/element"
)

// Report receives the ordered list of document nodes a slot currently
// renders. It may be called many times; every call replaces the previous
// list.
type Report func(nodes []dom.Node)

// Slot is the runtime object bound to one mounted element.
//
// A slot is mounted once and unmounted once by its owner. It never removes
// its nodes from the document itself; the owner drops them the next time it
// reports.
type Slot interface {
	// Mount renders the element and reports its nodes, synchronously for
	// static content and later for Future and Stream content.
	Mount(report Report) error

	// Unmount releases the slot and its children. Reports stop.
	Unmount()

	// Kind returns the element kind the slot renders.
	Kind() element.Kind
}

// Classify returns the slot for e.
func (rt *Runtime) Classify(e element.Element) (Slot, error) {
	switch e.Kind {
	case element.KindAbsent:
		return &absentSlot{rt: rt}, nil
	case element.KindComposite:
		return &compositeSlot{rt: rt, items: e.Items}, nil
	case element.KindNode:
		if e.Tag != "" {
			return &nodeSlot{rt: rt, el: e}, nil
		}
	case element.KindStream:
		if e.Stream != nil {
			return &streamSlot{rt: rt, stream: e.Stream}, nil
		}
	case element.KindFuture:
		if e.Future != nil {
			return &futureSlot{rt: rt, future: e.Future}, nil
		}
	case element.KindPrimitive:
		return &textSlot{rt: rt, text: e.Text}, nil
	}
	return nil, classificationError(e)
}

type absentSlot struct {
	rt *Runtime
}

func (s *absentSlot) Mount(report Report) error {
	s.rt.metrics.mount(element.KindAbsent)
	report(nil)
	return nil
}

func (s *absentSlot) Unmount() {
	s.rt.metrics.unmount(element.KindAbsent)
}

func (s *absentSlot) Kind() element.Kind { return element.KindAbsent }

type textSlot struct {
	rt   *Runtime
	text string
}

func (s *textSlot) Mount(report Report) error {
	s.rt.metrics.mount(element.KindPrimitive)
	report([]dom.Node{s.rt.doc.CreateTextNode(s.text)})
	return nil
}

func (s *textSlot) Unmount() {
	s.rt.metrics.unmount(element.KindPrimitive)
}

func (s *textSlot) Kind() element.Kind { return element.KindPrimitive }
