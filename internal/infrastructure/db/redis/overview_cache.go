package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

const (
	overviewKey = "admin:overview"
	overviewTTL = 30 * time.Second
)

// OverviewCache stores the admin overview statistics in Redis with a short
// TTL, so repeated dashboard loads do not hit the aggregation pipeline.
type OverviewCache struct {
	client *redis.Client
}

// NewOverviewCache creates an OverviewCache wrapping the given client.
func NewOverviewCache(client *redis.Client) *OverviewCache {
	return &OverviewCache{client: client}
}

// Get returns the cached overview, or (nil, nil) on a cache miss.
func (c *OverviewCache) Get(ctx context.Context) (*ports.Overview, error) {
	raw, err := c.client.Get(ctx, overviewKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("overview cache get: %w", err)
	}

	var o ports.Overview
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("overview cache decode: %w", err)
	}
	return &o, nil
}

// Set stores the overview, replacing any previous value.
func (c *OverviewCache) Set(ctx context.Context, o *ports.Overview) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("overview cache encode: %w", err)
	}
	return c.client.Set(ctx, overviewKey, raw, overviewTTL).Err()
}
