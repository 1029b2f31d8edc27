// Package todo is a to-do list application built from deuce components.
//
// Load reads the list from a Store and renders App. App wires pipes from
// its inputs into List, an active component which multiplexes them and
// re-renders on every action. Each entry is an active component of its own
// that switches between a view and an editor.
//
// Stores live in subpackages (redisstore, s3store) next to MemoryStore and
// FileStore; backend opens the one named by the configuration.
package todo
