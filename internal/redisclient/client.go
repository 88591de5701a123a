package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const outboxKey = "outbox:orders"

type Client struct {
	rdb *redis.Client
}

// NewClient connects to Redis and verifies the connection
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

// CacheResource stores a serialized catalog resource with a TTL
func (c *Client) CacheResource(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("catalog:%s", id), payload, ttl).Err()
}

// CachedResource returns the serialized resource, or nil on a cache miss
func (c *Client) CachedResource(ctx context.Context, id string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, fmt.Sprintf("catalog:%s", id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// EnqueueOrder appends a serialized offline order to the outbox list
func (c *Client) EnqueueOrder(ctx context.Context, payload []byte) error {
	if err := c.rdb.RPush(ctx, outboxKey, payload).Err(); err != nil {
		return fmt.Errorf("outbox enqueue failed: %w", err)
	}
	return nil
}

// PendingOrders returns up to max serialized outbox entries, oldest first,
// without removing them
func (c *Client) PendingOrders(ctx context.Context, max int) ([][]byte, error) {
	values, err := c.rdb.LRange(ctx, outboxKey, 0, int64(max)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("outbox read failed: %w", err)
	}

	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out, nil
}

// RemoveOrder deletes the first occurrence of a serialized entry from the
// outbox list
func (c *Client) RemoveOrder(ctx context.Context, payload []byte) error {
	if err := c.rdb.LRem(ctx, outboxKey, 1, payload).Err(); err != nil {
		return fmt.Errorf("outbox remove failed: %w", err)
	}
	return nil
}

// OutboxDepth returns the number of entries awaiting reconciliation
func (c *Client) OutboxDepth(ctx context.Context) (int64, error) {
	return c.rdb.LLen(ctx, outboxKey).Result()
}
