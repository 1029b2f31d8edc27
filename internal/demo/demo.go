package demo

import (
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo"
)

// Env is what a demo may use while building its tree.
type Env struct {
	// Store backs the to-do demo.
	Store todo.Store

	// Logger receives messages the demos would otherwise show in a dialog.
	Logger *slog.Logger

	// Tick is the unit of every delay in the demos.
	Tick time.Duration
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e Env) tick() time.Duration {
	if e.Tick <= 0 {
		return time.Second
	}
	return e.Tick
}

// Demo is a named tree of elements.
type Demo struct {
	Name        string
	Description string

	// Build returns the children passed to render.Render. It is called once
	// per rendering so demos do not share state.
	Build func(env Env) []any
}

var (
	mu    sync.RWMutex
	demos = map[string]Demo{}
)

// Register adds a demo, replacing one with the same name.
func Register(d Demo) {
	mu.Lock()
	defer mu.Unlock()
	demos[d.Name] = d
}

// Get returns the demo called name.
func Get(name string) (Demo, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := demos[name]
	if !ok {
		return Demo{}, errors.New("D300").
			WithDetail("No demo named " + strconv.Quote(name) + ".").
			WithSuggestion("Run `deuce demos` to list them")
	}
	return d, nil
}

// All returns every demo sorted by name.
func All() []Demo {
	mu.RLock()
	defer mu.RUnlock()
	list := make([]Demo, 0, len(demos))
	for _, d := range demos {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Names returns the names of every demo, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
	}
	return names
}
