package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct returns a cached product, or nil on miss
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &p, nil
}

// SetProduct caches a product with a TTL
func (c *Client) SetProduct(ctx context.Context, p *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}
	return c.rdb.Set(ctx, productKey(p.ID), data, ttl).Err()
}

// InvalidateProduct drops a product from the cache after a catalog write
func (c *Client) InvalidateProduct(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, productKey(id)).Err()
}
