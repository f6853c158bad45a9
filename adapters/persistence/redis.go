package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/linkedin-crm/internal/config"
	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
)

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	fmt.Println("Connect Redis successfully.")
	return rdb, nil
}

const detailCacheTTL = 10 * time.Minute

// redisDetailCache keeps the assembled profile detail as JSON. Stale
// entries are dropped on every save or delete, so the TTL is only a
// safety net.
type redisDetailCache struct {
	rdb *redis.Client
}

func NewRedisDetailCache(rdb *redis.Client) profile.DetailCache {
	return &redisDetailCache{rdb: rdb}
}

func detailKey(id int64) string {
	return fmt.Sprintf("profile:detail:%d", id)
}

func (c *redisDetailCache) Get(ctx context.Context, id int64) (*profile.Profile, error) {
	payload, err := c.rdb.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(payload, p); err != nil {
		return nil, fmt.Errorf("decode cached profile failed: %w", err)
	}
	return p, nil
}

func (c *redisDetailCache) Set(ctx context.Context, p *profile.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile for cache failed: %w", err)
	}
	if err := c.rdb.Set(ctx, detailKey(p.ID), payload, detailCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDetailCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.rdb.Del(ctx, detailKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
