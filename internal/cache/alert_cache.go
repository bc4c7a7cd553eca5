// internal/cache/alert_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
)

const (
	alertKeyPrefix     = "alerts:scan"
	alertScanBatchSize = 100
)

// AlertCache holds the most recent alert scan per warehouse and alert
// cap. Scans are truncated before they are stored, so the cap is part of
// the key; scans are regenerated on every run and the TTL is
// deliberately short.
type AlertCache interface {
	Get(ctx context.Context, warehouseID string, maxAlerts int) (domain.AlertScan, bool, error)
	Set(ctx context.Context, warehouseID string, maxAlerts int, scan domain.AlertScan) error
	InvalidateAll(ctx context.Context) error
}

type redisAlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAlertCache struct{}

func NewAlertCache(cfg config.CacheConfig) (AlertCache, error) {
	if !cfg.Enabled {
		return &noopAlertCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg, cfg.AlertTTLSeconds)
	if err != nil {
		return nil, err
	}

	return &redisAlertCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAlertCache() AlertCache {
	return &noopAlertCache{}
}

func buildAlertKey(warehouseID string, maxAlerts int) string {
	if warehouseID == "" {
		warehouseID = "all"
	}
	return fmt.Sprintf("%s:%s:%d", alertKeyPrefix, warehouseID, maxAlerts)
}

func (c *redisAlertCache) Get(ctx context.Context, warehouseID string, maxAlerts int) (domain.AlertScan, bool, error) {
	payload, err := c.client.Get(ctx, buildAlertKey(warehouseID, maxAlerts)).Bytes()
	if err == redis.Nil {
		return domain.AlertScan{}, false, nil
	}
	if err != nil {
		return domain.AlertScan{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var scan domain.AlertScan
	if err := json.Unmarshal(payload, &scan); err != nil {
		return domain.AlertScan{}, false, fmt.Errorf("decode alert cache: %w", err)
	}

	return scan, true, nil
}

func (c *redisAlertCache) Set(ctx context.Context, warehouseID string, maxAlerts int, scan domain.AlertScan) error {
	payload, err := json.Marshal(scan)
	if err != nil {
		return fmt.Errorf("encode alert cache: %w", err)
	}

	if err := c.client.Set(ctx, buildAlertKey(warehouseID, maxAlerts), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAlertCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, alertKeyPrefix, alertScanBatchSize)
}

func (n *noopAlertCache) Get(ctx context.Context, warehouseID string, maxAlerts int) (domain.AlertScan, bool, error) {
	return domain.AlertScan{}, false, nil
}

func (n *noopAlertCache) Set(ctx context.Context, warehouseID string, maxAlerts int, scan domain.AlertScan) error {
	return nil
}

func (n *noopAlertCache) InvalidateAll(ctx context.Context) error {
	return nil
}
