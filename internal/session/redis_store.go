package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sukaikan/internal/cart"

	"github.com/redis/go-redis/v9"
)

const keyFormat = "session:%s"

// redisClient is the part of *redis.Client the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type redisStore struct {
	rdb redisClient
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return newRedisStore(rdb, ttl)
}

func newRedisStore(rdb redisClient, ttl time.Duration) *redisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return fmt.Sprintf(keyFormat, id) }

func (r *redisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	s.ID = id
	if s.Cart == nil {
		s.Cart = cart.Cart{}
	}
	return &s, nil
}

// Save writes s and refreshes its TTL.
func (r *redisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key(s.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
