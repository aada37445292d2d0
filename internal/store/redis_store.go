package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "campus"

// RedisStore persists snapshots as JSON strings in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}

// Save serializes v and stores it under key.
func (s *RedisStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), data, 0).Err()
}

// Load deserializes the value under key into dest.
func (s *RedisStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the snapshot under key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
