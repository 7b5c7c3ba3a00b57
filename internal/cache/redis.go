// Package cache keeps paid checkout status snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"publicweb/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisCache(opts Options) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB}),
		ttl:    opts.TTL,
	}
}

// NewWithClient is used when the caller already owns a client (tests, shared pools).
func NewWithClient(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetStatus returns nil, nil on a miss.
func (c *RedisCache) GetStatus(ctx context.Context, orderID int64) (*models.CheckoutStatus, error) {
	data, err := c.client.Get(ctx, statusKey(orderID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var st models.CheckoutStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode cached status: %w", err)
	}
	return &st, nil
}

// SetStatus only stores paid snapshots; anything else can still change.
func (c *RedisCache) SetStatus(ctx context.Context, orderID int64, st models.CheckoutStatus) error {
	if !st.Paid {
		return nil
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKey(orderID), payload, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	if closer, ok := c.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func statusKey(orderID int64) string {
	return fmt.Sprintf("checkout:status:%d", orderID)
}
