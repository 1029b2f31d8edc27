// Package backend opens the to-do store named by the configuration.
package backend

import (
	"path/filepath"
	"strconv"

	"github.com/deuce-x/deuce/internal/config"
	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo"
	"github.com/deuce-x/deuce/internal/todo/redisstore"
	"github.com/deuce-x/deuce/internal/todo/s3store"
)

// Open creates the store configured in cfg.Store. The returned close
// function releases its connections and is never nil.
func Open(cfg *config.Config) (todo.Store, func() error, error) {
	sc := cfg.Store
	noop := func() error { return nil }

	switch sc.Backend {
	case config.BackendMemory:
		return todo.NewMemoryStore(), noop, nil

	case config.BackendFile:
		return todo.NewFileStore(cfg.StorePath(), sc.Key), noop, nil

	case config.BackendRedis:
		ttl, err := cfg.RedisTTL()
		if err != nil {
			return nil, noop, errors.New("D102").WithDetail("store.redis.ttl is not a duration").Wrap(err)
		}
		store := redisstore.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB, sc.Key,
			redisstore.WithPrefix(sc.Redis.Prefix),
			redisstore.WithTTL(ttl))
		return store, store.Close, nil

	case config.BackendS3:
		if sc.S3.Bucket == "" {
			return nil, noop, errors.New("D102").WithDetail("store.s3.bucket is required for the s3 backend")
		}
		client := s3store.NewClient(s3store.Options{
			Region:    sc.S3.Region,
			Endpoint:  sc.S3.Endpoint,
			PathStyle: sc.S3.PathStyle,
		})
		return s3store.New(client, sc.S3.Bucket, sc.S3.Prefix, sc.Key), noop, nil
	}

	return nil, noop, errors.New("D200").
		WithDetail("store.backend is " + strconv.Quote(sc.Backend)).
		WithSuggestion("Use one of memory, file, redis or s3")
}

// Describe returns a short human readable location of the configured store.
func Describe(cfg *config.Config) string {
	sc := cfg.Store
	switch sc.Backend {
	case config.BackendFile:
		return filepath.Join(cfg.StorePath(), sc.Key+".json")
	case config.BackendRedis:
		return "redis://" + sc.Redis.Addr + "/" + sc.Redis.Prefix + sc.Key
	case config.BackendS3:
		return "s3://" + sc.S3.Bucket + "/" + sc.S3.Prefix + sc.Key + ".json"
	}
	return sc.Backend
}
