package todo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/deuce-x/deuce/internal/errors"
)

// Item is a single entry of a to-do list.
type Item struct {
	Done bool   `json:"done"`
	Text string `json:"text"`
}

// Store persists a to-do list.
//
// Load returns an empty list, not an error, when nothing was saved yet.
type Store interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// MemoryStore keeps the list in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	items []Item
	saves int
}

// NewMemoryStore creates a store holding items.
func NewMemoryStore(items ...Item) *MemoryStore {
	return &MemoryStore{items: slices.Clone(items)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items), nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FileStore keeps the list as JSON in <dir>/<key>.json.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to dir. The directory is created on
// the first Save.
func NewFileStore(dir, key string) *FileStore {
	return &FileStore{path: filepath.Join(dir, key+".json")}
}

// Path returns the file the list is stored in.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("D201").Wrap(err)
	}
	return Decode(data)
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, items []Item) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.New("D202").Wrap(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".todo-*")
	if err != nil {
		return errors.New("D202").Wrap(err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New("D202").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.New("D202").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.New("D202").Wrap(err)
	}
	return nil
}

// Encode serializes a list the way every store writes it.
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, errors.New("D202").Wrap(err)
	}
	return data, nil
}

// Decode parses a list written by Encode.
func Decode(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.New("D201").WithDetail("The stored list is not valid JSON.").Wrap(err)
	}
	return items, nil
}
