package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lzar/wallet-gateway/internal/api/metrics"
)

const defaultBalanceTTL = 30 * time.Second

// BalanceCache is a short-lived cache of provider wallet balances, keyed by
// provider user id. It only ever trims provider round-trips; a cold or
// unavailable Redis never degrades a balance read below what the provider
// itself would return.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBalanceCache creates a BalanceCache. If ttl <= 0 a default of 30s is
// used — long enough to absorb page-refresh bursts, short enough that a
// fresh mint shows up promptly.
func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	if ttl <= 0 {
		ttl = defaultBalanceTTL
	}
	return &BalanceCache{client: client, ttl: ttl}
}

// Get reports the cached balance and whether one was present.
func (c *BalanceCache) Get(ctx context.Context, providerUserID string) (float64, bool, error) {
	val, err := c.client.Get(ctx, c.key(providerUserID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.BalanceCacheTotal.WithLabelValues("miss").Inc()
			return 0, false, nil
		}
		metrics.BalanceCacheTotal.WithLabelValues("error").Inc()
		return 0, false, fmt.Errorf("balance cache get: %w", err)
	}

	balance, err := strconv.ParseFloat(val, 64)
	if err != nil {
		metrics.BalanceCacheTotal.WithLabelValues("error").Inc()
		return 0, false, fmt.Errorf("balance cache parse: %w", err)
	}
	metrics.BalanceCacheTotal.WithLabelValues("hit").Inc()
	return balance, true, nil
}

// Set records a balance, expiring after the cache TTL.
func (c *BalanceCache) Set(ctx context.Context, providerUserID string, balance float64) error {
	return c.client.Set(ctx, c.key(providerUserID), strconv.FormatFloat(balance, 'f', -1, 64), c.ttl).Err()
}

func (c *BalanceCache) key(providerUserID string) string {
	return "balance:" + providerUserID
}
