// Package cache provides the best-effort Redis cache used for report
// letterhead metadata.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// New creates a new Redis client and verifies connectivity.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("platform/cache: ping: %w", err)
	}

	return client, nil
}

// Metadata is a string cache backed by Redis. All failures are logged and
// swallowed; callers treat a miss and an error identically.
type Metadata struct {
	client *redis.Client
	logger *slog.Logger
}

// NewMetadata wraps a Redis client as a best-effort metadata cache.
func NewMetadata(client *redis.Client, logger *slog.Logger) *Metadata {
	return &Metadata{client: client, logger: logger}
}

// Get returns the cached value for key, or false on miss or error.
func (m *Metadata) Get(ctx context.Context, key string) (string, bool) {
	if m == nil || m.client == nil {
		return "", false
	}
	raw, err := m.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil && m.logger != nil {
			m.logger.Warn("metadata cache get", slog.String("key", key), slog.Any("error", err))
		}
		return "", false
	}
	return raw, true
}

// Set stores value under key for the given TTL. Errors are logged only.
func (m *Metadata) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if m == nil || m.client == nil {
		return
	}
	if err := m.client.Set(ctx, key, value, ttl).Err(); err != nil && m.logger != nil {
		m.logger.Warn("metadata cache set", slog.String("key", key), slog.Any("error", err))
	}
}
