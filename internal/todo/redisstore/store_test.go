package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo"
	"github.com/deuce-x/deuce/internal/todo/redisstore"
	"github.com/deuce-x/deuce/internal/todo/todotest"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	todotest.RunStoreContract(t, redisstore.NewFromClient(client, "todos"))
}

func TestRedisStore_Options(t *testing.T) {
	mr, client := setup(t)
	store := redisstore.NewFromClient(client, "list",
		redisstore.WithPrefix("app:"),
		redisstore.WithTTL(time.Minute))

	if store.Key() != "app:list" {
		t.Errorf("Key() = %q, want app:list", store.Key())
	}
	if err := store.Save(context.Background(), []todo.Item{{Text: "a"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := mr.Get("app:list")
	if err != nil {
		t.Fatalf("miniredis Get() error = %v", err)
	}
	if got != `[{"done":false,"text":"a"}]` {
		t.Errorf("stored = %s", got)
	}
	if ttl := mr.TTL("app:list"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	items, err := store.Load(context.Background())
	if err != nil || len(items) != 0 {
		t.Errorf("Load() after expiry = %v, %v", items, err)
	}
}

func TestRedisStore_Corrupt(t *testing.T) {
	mr, client := setup(t)
	if err := mr.Set("deuce:todos", "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err := redisstore.NewFromClient(client, "todos").Load(context.Background())
	if got := errors.Code(err); got != "D201" {
		t.Errorf("Load() code = %q, want D201 (%v)", got, err)
	}
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr, client := setup(t)
	mr.Close()
	err := redisstore.NewFromClient(client, "todos").Save(context.Background(), nil)
	if got := errors.Code(err); got != "D202" {
		t.Errorf("Save() code = %q, want D202 (%v)", got, err)
	}
}
