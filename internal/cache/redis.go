package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"

	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

const (
	connectAttempts = 5
	connectDelay    = 500 * time.Millisecond
)

// Connect opens a Redis client from a redis:// URL and waits until it answers PING.
func Connect(ctx context.Context, redisURL string, l *logger.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	err = retry.Do(
		func() error {
			return client.Ping(ctx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			l.Warning("redis ping failed, retrying", map[string]any{"attempt": n + 1, "err": err.Error()})
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	l.Info("redis connected", map[string]any{"addr": opt.Addr, "db": opt.DB})
	return client, nil
}

// SnapshotCache stores weather snapshots as JSON with a fixed TTL.
type SnapshotCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSnapshotCache(rdb redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// Get returns nil without error on a cache miss.
func (c *SnapshotCache) Get(ctx context.Context, key string) (*models.WeatherSnapshot, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var snapshot models.WeatherSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cached snapshot %s: %w", key, err)
	}
	return &snapshot, nil
}

func (c *SnapshotCache) Set(ctx context.Context, key string, snapshot *models.WeatherSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
