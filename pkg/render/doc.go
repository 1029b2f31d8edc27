// Package render mounts element trees into a document and keeps them up to
// date.
//
// Every element is bound to a Slot chosen by Runtime.Classify:
//
//   - Absent and Primitive slots report zero or one text node.
//   - A Node slot creates one document element, applies its props and
//     mounts its children into it.
//   - A Composite slot concatenates the reports of its members.
//   - A Future slot mounts the settled value once the Future resolves.
//   - A Stream slot mounts every value the Stream produces, replacing the
//     previous one, until the stream finishes or the slot is unmounted.
//
// Slots communicate upward through a Report callback. Render wraps the
// top-level children in a Composite and replaces the container's children
// on every report.
//
// All slot work happens on the loop.Loop given to NewRuntime. Futures and
// streams block on background goroutines and post their results back to
// the loop, so a program drives the loop with Run and a test steps through
// asynchronous updates one at a time:
//
//	doc := dom.NewMemory()
//	l := loop.New()
//	rt := render.NewRuntime(doc, l)
//	root, err := render.Render(rt, doc.Body(), app)
//	if err != nil {
//	    return err
//	}
//	defer root.Unmount()
//	_ = l.Step(ctx) // first asynchronous update
package render
