package render

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/use"
)

// Commit describes one update of a root container.
type Commit struct {
	Seq   uint64     // 1 for the first commit
	Nodes []dom.Node // new children of the container
}

// Root is a mounted element tree. Every report of its top-level composite
// replaces all children of the container.
type Root struct {
	rt        *Runtime
	container dom.Element
	previous  []dom.Node
	slot      Slot
	seq       uint64
	mounted   bool
	commits   use.Event[Commit]
}

// Render mounts children into container. The container's existing children
// are replaced and restored by Unmount. Render must run on the loop
// goroutine, or before the loop is driven.
//
// A classification error anywhere in the synchronous part of the tree fails
// the whole render and leaves the container unchanged.
func Render(rt *Runtime, container dom.Element, children ...any) (*Root, error) {
	_, span := rt.tracer.Start(rt.ctx, "render.Root",
		trace.WithAttributes(
			attribute.String("container", container.TagName()),
			attribute.Int("children", len(children)),
		))
	defer span.End()

	r := &Root{
		rt:        rt,
		container: container,
		previous:  container.ChildNodes(),
	}
	slot, err := rt.Classify(element.List(children...))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	r.mounted = true
	if err := slot.Mount(r.commit); err != nil {
		r.mounted = false
		span.RecordError(err)
		return nil, err
	}
	r.slot = slot
	rt.logger.Debug("root mounted", "container", container.TagName(), "commits", r.seq)
	return r, nil
}

func (r *Root) commit(nodes []dom.Node) {
	if !r.mounted {
		return
	}
	r.container.ReplaceChildren(nodes...)
	r.seq++
	r.rt.metrics.commit()
	r.commits.Emit(Commit{Seq: r.seq, Nodes: nodes})
}

// Subscribe registers fn to run, on the loop, after every commit.
func (r *Root) Subscribe(fn func(Commit)) (cancel func()) {
	return r.commits.Subscribe(fn)
}

// Container returns the element the root renders into.
func (r *Root) Container() dom.Element {
	return r.container
}

// Commits returns the number of commits so far.
func (r *Root) Commits() uint64 {
	return r.seq
}

// Unmount unmounts the tree and restores the container's original children.
func (r *Root) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false
	r.slot.Unmount()
	r.container.ReplaceChildren(r.previous...)
	r.rt.logger.Debug("root unmounted", "container", r.container.TagName(), "commits", r.seq)
}
