// Package todotest checks Store implementations.
package todotest

import (
	"context"
	"slices"
	"testing"

	"github.com/deuce-x/deuce/internal/todo"
)

// RunStoreContract runs the behaviour every todo.Store must have against
// an empty store.
func RunStoreContract(t *testing.T, store todo.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty load", func(t *testing.T) {
		items, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(items) != 0 {
			t.Errorf("Load() = %v, want empty", items)
		}
	})

	want := []todo.Item{{Text: "milk"}, {Done: true, Text: "eggs"}}
	t.Run("save and load", func(t *testing.T) {
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("Load() = %v, want %v", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := store.Save(ctx, want[1:]); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !slices.Equal(got, want[1:]) {
			t.Errorf("Load() = %v, want %v", got, want[1:])
		}
	})

	t.Run("save empty", func(t *testing.T) {
		if err := store.Save(ctx, nil); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Load() = %v, want empty", got)
		}
	})
}
