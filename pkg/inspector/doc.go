// Package inspector serves a live view of a rendered root over HTTP.
//
// The root is rendered into an in-memory document. The inspector sends the
// container's HTML to every connected browser over a WebSocket after each
// commit, and browsers send DOM events back. Events address their target
// by element-child indexes from the container and are dispatched on the
// render loop, so listeners run exactly as they would for in-process
// events.
//
// Routes:
//
//	GET /          page with the current HTML and the live view script
//	GET /snapshot  current HTML as JSON
//	GET /ws        WebSocket (snapshot and error messages out, event in)
//	GET /healthz   liveness
//	GET /metrics   Prometheus metrics, with WithGatherer
package inspector
