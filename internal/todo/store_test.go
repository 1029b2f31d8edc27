package todo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo"
	"github.com/deuce-x/deuce/internal/todo/todotest"
)

func TestMemoryStore_Contract(t *testing.T) {
	todotest.RunStoreContract(t, todo.NewMemoryStore())
}

func TestFileStore_Contract(t *testing.T) {
	todotest.RunStoreContract(t, todo.NewFileStore(filepath.Join(t.TempDir(), "nested"), "todos"))
}

func TestMemoryStore_Copies(t *testing.T) {
	items := []todo.Item{{Text: "a"}}
	store := todo.NewMemoryStore(items...)
	items[0].Text = "changed"

	got, _ := store.Load(context.Background())
	if got[0].Text != "a" {
		t.Errorf("Load() = %v, store aliases its input", got)
	}
	got[0].Text = "changed"
	again, _ := store.Load(context.Background())
	if again[0].Text != "a" {
		t.Errorf("Load() = %v, store aliases its output", again)
	}
}

func TestFileStore_Format(t *testing.T) {
	dir := t.TempDir()
	store := todo.NewFileStore(dir, "list")
	if err := store.Save(context.Background(), []todo.Item{{Done: true, Text: "x"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "list.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `[{"done":true,"text":"x"}]` {
		t.Errorf("file = %s", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temporary file left behind?)", len(entries))
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "todos.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := todo.NewFileStore(dir, "todos").Load(context.Background())
	if got := errors.Code(err); got != "D201" {
		t.Errorf("Load() code = %q, want D201 (%v)", got, err)
	}
}
