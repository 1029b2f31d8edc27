package render

import (
	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/element"
)

// compositeSlot renders a list of members and reports the concatenation of
// their latest reports, in member order. Identity is positional.
type compositeSlot struct {
	rt       *Runtime
	items    []element.Element
	members  []Slot
	latest   [][]dom.Node
	report   Report
	mounting bool
	live     bool
}

func (s *compositeSlot) Mount(report Report) error {
	members := make([]Slot, len(s.items))
	for i, item := range s.items {
		m, err := s.rt.Classify(item)
		if err != nil {
			return err
		}
		members[i] = m
	}

	s.report = report
	s.latest = make([][]dom.Node, len(members))
	s.live = true
	s.mounting = true
	for i, m := range members {
		if err := m.Mount(s.reportAt(i)); err != nil {
			for _, prev := range members[:i] {
				prev.Unmount()
			}
			s.live = false
			return err
		}
	}
	s.members = members
	s.mounting = false
	s.rt.metrics.mount(element.KindComposite)
	s.forward()
	return nil
}

func (s *compositeSlot) reportAt(i int) Report {
	return func(nodes []dom.Node) {
		if !s.live {
			return
		}
		s.latest[i] = nodes
		if !s.mounting {
			s.forward()
		}
	}
}

func (s *compositeSlot) forward() {
	n := 0
	for _, nodes := range s.latest {
		n += len(nodes)
	}
	all := make([]dom.Node, 0, n)
	for _, nodes := range s.latest {
		all = append(all, nodes...)
	}
	s.rt.metrics.report(element.KindComposite)
	s.report(all)
}

func (s *compositeSlot) Unmount() {
	if !s.live {
		return
	}
	s.live = false
	for _, m := range s.members {
		m.Unmount()
	}
	s.members = nil
	s.rt.metrics.unmount(element.KindComposite)
}

func (s *compositeSlot) Kind() element.Kind { return element.KindComposite }
