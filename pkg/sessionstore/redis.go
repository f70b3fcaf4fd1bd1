package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis is a session store backed by a Redis instance. It is intended for
// server-side consumers of the SDK that run multiple instances and need
// them to share one API session instead of each holding its own tokens.
//
// Keys are stored with no TTL: token lifetime is governed by the backend
// (an expired access token is discovered via a 401 and refreshed), so
// expiring the stored copy early would only force needless re-logins.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed session store wrapping an existing client.
// The prefix namespaces this SDK's keys within a shared Redis instance;
// pass "" for no prefix.
//
// Example:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store := sessionstore.NewRedis(rdb, "devigo:")
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

// Get returns the value stored under key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to read session key from Redis")
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Set stores value under key with no expiration.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to write session key to Redis")
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to delete session key from Redis")
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}
