package prefs

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisProvider stores each client's preferences in a Redis hash
type RedisProvider struct {
	rdb *redis.Client
}

// NewRedisProvider creates a provider on an initialized client
func NewRedisProvider(rdb *redis.Client) *RedisProvider {
	return &RedisProvider{rdb: rdb}
}

// Store returns the store of clientID
func (p *RedisProvider) Store(clientID string) Store {
	return &redisStore{rdb: p.rdb, key: fmt.Sprintf("prefs:%s", clientID)}
}

// Close closes the underlying client
func (p *RedisProvider) Close() error {
	return p.rdb.Close()
}

type redisStore struct {
	rdb *redis.Client
	key string
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.key, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference from Redis: %w", err)
	}
	return v, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to store preference in Redis: %w", err)
	}
	return nil
}
