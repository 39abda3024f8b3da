package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

const servicesKey = "catalog:services"

// RedisCatalogCache keeps the public service list as one JSON value.
// Cache failures are logged and treated as misses.
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return client, nil
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCatalogCache) GetServices(ctx context.Context) ([]models.Service, bool) {
	raw, err := c.client.Get(ctx, servicesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		c.log.Warn("catalog cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return services, true
}

func (c *RedisCatalogCache) SetServices(ctx context.Context, services []models.Service) {
	raw, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, servicesKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, servicesKey).Err(); err != nil {
		c.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}

// Compile-time check
var _ catalog.Cache = (*RedisCatalogCache)(nil)
