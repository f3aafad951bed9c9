package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps values under "planner:{client}:{key}". A zero ttl keeps
// them until deleted.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(clientID uuid.UUID, key string) string {
	return "planner:" + scopedKey(clientID, key)
}

func (s *RedisStore) Get(ctx context.Context, clientID uuid.UUID, key string) (string, error) {
	v, err := s.client.Get(ctx, redisKey(clientID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, clientID uuid.UUID, key, value string) error {
	if err := s.client.Set(ctx, redisKey(clientID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, clientID uuid.UUID, key string) error {
	if err := s.client.Del(ctx, redisKey(clientID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
