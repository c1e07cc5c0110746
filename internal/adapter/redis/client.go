// Package redis implements the fast cache used for state snapshots and
// cooldown markers.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/pathgraph/internal/config"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

// NewClient creates a Redis client configured from RedisConfig and pings it
// for fail-fast validation.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w: %w", domain.ErrUnavailable, err)
	}

	return rdb, nil
}

// Store is a namespaced key/value view over a Redis client.
// Every error returned is marked domain.ErrUnavailable except context.Canceled.
type Store struct {
	rdb    *goredis.Client
	prefix string
}

// NewStore creates a Store whose keys are all prefixed with prefix + ":".
func NewStore(rdb *goredis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Get returns the value at key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapError(err, "get", key)
	}
	return val, true, nil
}

// Set stores value at key. A zero ttl keeps the key until deleted.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return mapError(err, "set", key)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return mapError(err, "del", key)
	}
	return nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, mapError(err, "exists", key)
	}
	return n > 0, nil
}

// SetNX stores a marker at key with ttl only if the key is absent and reports
// whether this call placed it.
func (s *Store) SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, s.key(key), "1", ttl).Result()
	if err != nil {
		return false, mapError(err, "setnx", key)
	}
	return ok, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return mapError(err, "ping", "")
	}
	return nil
}

func mapError(err error, op, key string) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("redis %s %s: %w", op, key, err)
	}
	return fmt.Errorf("redis %s %s: %w: %w", op, key, domain.ErrUnavailable, err)
}
