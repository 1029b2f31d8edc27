// Package redisstore keeps to-do lists in Redis.
package redisstore

import (
	"context"
	stderrors "errors"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo"
)

// Store implements todo.Store as a JSON string under <prefix><key>.
type Store struct {
	client *backend.Client
	key    string
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL expires the stored list ttl after each save.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a store with its own client.
func New(address, password string, db int, key string, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, key, opts...)
}

// NewFromClient creates a store from an existing client.
func NewFromClient(client *backend.Client, key string, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    key,
		prefix: "deuce:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the Redis key of the list.
func (s *Store) Key() string {
	return s.prefix + s.key
}

// Load implements todo.Store.
func (s *Store) Load(ctx context.Context) ([]todo.Item, error) {
	val, err := s.client.Get(ctx, s.Key()).Bytes()
	if stderrors.Is(err, backend.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("D201").Wrap(err)
	}
	return todo.Decode(val)
}

// Save implements todo.Store.
func (s *Store) Save(ctx context.Context, items []todo.Item) error {
	data, err := todo.Encode(items)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(), data, s.ttl).Err(); err != nil {
		return errors.New("D202").Wrap(err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
