// Package loop provides the cooperative scheduler the renderer runs on.
//
// A Loop owns a FIFO of tasks. Background goroutines never mutate render
// state directly; they finish their blocking wait and hand a continuation
// back with Post or Go. The goroutine that drives the loop (Run in a
// program, Step or Drain in a test) is the only one that mutates slots and
// the document.
//
//	l := loop.New()
//	l.Go(func() func() {
//	    v := slowLookup()
//	    return func() { show(v) } // runs on the loop
//	})
//	_ = l.Step(ctx)
package loop
