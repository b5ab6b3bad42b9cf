// pkg/services/cache.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bluepriori-dashboard/config"
	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/utils"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "bluepriori:vulns:"

// NewDetailCache builds the vulnerability cache configured in cfg.Cache.
// It returns nil when caching is disabled.
func NewDetailCache(ctx context.Context, cfg *config.Config, log *utils.Logger) (interfaces.DetailCacheInterface, error) {
	if !cfg.Cache.Enabled {
		log.WithFunc().Info("Vulnerability cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Provider {
	case "redis":
		cache, err := NewRedisDetailCache(ctx, cfg.Cache.Redis, cfg.CacheTTL(), log)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case "memory", "":
		return NewMemoryDetailCache(cfg.Cache.Size, cfg.CacheTTL()), nil
	default:
		return nil, fmt.Errorf("unknown cache provider %q", cfg.Cache.Provider)
	}
}

// MemoryDetailCache keeps vulnerability lists in a size-bounded expiring LRU
type MemoryDetailCache struct {
	lru *expirable.LRU[int64, []models.Vulnerability]
}

// NewMemoryDetailCache creates an in-process cache of size entries
func NewMemoryDetailCache(size int, ttl time.Duration) *MemoryDetailCache {
	return &MemoryDetailCache{
		lru: expirable.NewLRU[int64, []models.Vulnerability](size, nil, ttl),
	}
}

func (c *MemoryDetailCache) Get(_ context.Context, assetID int64) ([]models.Vulnerability, bool) {
	vulns, ok := c.lru.Get(assetID)
	if !ok {
		return nil, false
	}
	return append([]models.Vulnerability{}, vulns...), true
}

func (c *MemoryDetailCache) Set(_ context.Context, assetID int64, vulns []models.Vulnerability) error {
	c.lru.Add(assetID, append([]models.Vulnerability{}, vulns...))
	return nil
}

func (c *MemoryDetailCache) Close() error {
	c.lru.Purge()
	return nil
}

// RedisDetailCache shares vulnerability lists between dashboard instances
type RedisDetailCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *utils.Logger
}

// NewRedisDetailCache connects to redis and checks the connection
func NewRedisDetailCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration, log *utils.Logger) (*RedisDetailCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	log.WithFunc().WithFields(logrus.Fields{
		"addr": cfg.Addr,
		"db":   cfg.DB,
		"ttl":  ttl.String(),
	}).Info("Vulnerability cache backed by redis")

	return &RedisDetailCache{client: client, ttl: ttl, log: log}, nil
}

func redisKey(assetID int64) string {
	return redisKeyPrefix + strconv.FormatInt(assetID, 10)
}

// Get treats redis errors as misses so the backend is asked instead
func (c *RedisDetailCache) Get(ctx context.Context, assetID int64) ([]models.Vulnerability, bool) {
	data, err := c.client.Get(ctx, redisKey(assetID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithFunc().WithError(err).WithField("assetId", assetID).Warn("Redis read failed")
		}
		return nil, false
	}

	var vulns []models.Vulnerability
	if err := json.Unmarshal(data, &vulns); err != nil {
		c.log.WithFunc().WithError(err).WithField("assetId", assetID).Warn("Dropping unreadable cache entry")
		return nil, false
	}
	return vulns, true
}

func (c *RedisDetailCache) Set(ctx context.Context, assetID int64, vulns []models.Vulnerability) error {
	data, err := json.Marshal(vulns)
	if err != nil {
		return fmt.Errorf("failed to encode vulnerabilities: %w", err)
	}
	return c.client.Set(ctx, redisKey(assetID), data, c.ttl).Err()
}

func (c *RedisDetailCache) Close() error {
	return c.client.Close()
}
