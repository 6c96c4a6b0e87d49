package repository

import (
	"context"
	"errors"

	repo "app/internal/repository"

	"github.com/redis/go-redis/v9"
)

// カートの耐久KV。TTLは付けない（リロードをまたいで残す）。
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
