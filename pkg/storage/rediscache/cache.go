// Package rediscache keeps the latest rate per currency pair in Redis so
// other processes can read current quotes without joining the stream.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gateparser/internal/gate/ratebus"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps an existing Redis client. Entries expire after ttl so the
// cache never serves quotes from a parser that stopped publishing.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// SaveRate satisfies the storage.RateStore contract.
func (c *Cache) SaveRate(ctx context.Context, source string, rate ratebus.Rate) error {
	return c.SetRate(ctx, source, rate)
}

// SetRate stores rate under rates:latest:<source>:<PAIR>.
func (c *Cache) SetRate(ctx context.Context, source string, rate ratebus.Rate) error {
	payload, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal rate: %w", err)
	}

	key := rateKey(source, rate.From+"_"+rate.To)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set latest rate: %w", err)
	}
	return nil
}

// GetRate reads the cached rate for one pair, e.g. ("gateio", "BTC_USDT").
func (c *Cache) GetRate(ctx context.Context, source, pair string) (*ratebus.Rate, error) {
	raw, err := c.client.Get(ctx, rateKey(source, pair)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("no rate cached for %s", pair)
		}
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	var rate ratebus.Rate
	if err := json.Unmarshal([]byte(raw), &rate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rate: %w", err)
	}
	return &rate, nil
}

// Ping checks the Redis connection health.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func rateKey(source, pair string) string {
	return fmt.Sprintf("rates:latest:%s:%s", source, pair)
}
