// Package redis provides a Redis-backed session scope backend so several
// admin instances can share sessions.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dronesimulator/admin/internal/platform/timeouts"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
)

const keyPrefix = "dronesim:admin:session:"

// client is the subset of *goredis.Client the store calls.
type client interface {
	HGet(ctx context.Context, key, field string) *goredis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *goredis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
	Close() error
}

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Store keeps one hash per owner and expires it after TTL without access.
type Store struct {
	client client
	ttl    time.Duration
}

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return newStore(rdb, cfg.TTL), nil
}

func newStore(c client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = timeouts.SessionIdle
	}
	return &Store{client: c, ttl: ttl}
}

// GetItem reads one hash field. A hit pushes the hash expiry out by TTL.
func (s *Store) GetItem(ctx context.Context, owner, key string) (string, bool, error) {
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return "", false, err
	}
	hk := hashKey(owner)
	value, err := s.client.HGet(ctx, hk, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	if err := s.client.Expire(ctx, hk, s.ttl).Err(); err != nil {
		return "", false, fmt.Errorf("redis expire: %w", err)
	}
	return value, true, nil
}

// SetItem writes one hash field and pushes the hash expiry out by TTL.
func (s *Store) SetItem(ctx context.Context, owner, key, value string) error {
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return err
	}
	hk := hashKey(owner)
	if err := s.client.HSet(ctx, hk, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	if err := s.client.Expire(ctx, hk, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	return nil
}

// RemoveItems deletes hash fields.
func (s *Store) RemoveItems(ctx context.Context, owner string, keys ...string) error {
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, hashKey(owner), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func hashKey(owner string) string {
	return keyPrefix + owner
}

var _ storage.Store = (*Store)(nil)
