package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"atelier/api/internal/config"
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

const catalogKey = "catalog:products"

// Catalog is a best-effort read cache for the public product listing.
// A nil client disables it; every method then falls through.
type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalog(client *redis.Client) *Catalog {
	return &Catalog{client: client, ttl: time.Minute}
}

func (c *Catalog) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *Catalog) Set(ctx context.Context, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, catalogKey, payload, c.ttl)
}

func (c *Catalog) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, catalogKey)
}
