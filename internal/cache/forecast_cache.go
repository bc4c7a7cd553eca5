// internal/cache/forecast_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

const (
	forecastKeyPrefix     = "forecast:result"
	forecastScanBatchSize = 100
)

// ForecastCache short-circuits recomputation of forecasts for identical
// demand queries. Forecast generation is CPU-bound and deterministic for
// a fixed history window, so a short TTL is safe.
type ForecastCache interface {
	Get(ctx context.Context, filter repository.DemandFilter, horizon int) (domain.ForecastResult, bool, error)
	Set(ctx context.Context, filter repository.DemandFilter, horizon int, result domain.ForecastResult) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg, cfg.ForecastTTLSeconds)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, filter repository.DemandFilter, horizon int) (domain.ForecastResult, bool, error) {
	key := buildForecastKey(filter, horizon)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return domain.ForecastResult{}, false, nil
	}
	if err != nil {
		return domain.ForecastResult{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.ForecastResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return domain.ForecastResult{}, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return result, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, filter repository.DemandFilter, horizon int, result domain.ForecastResult) error {
	key := buildForecastKey(filter, horizon)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, forecastScanBatchSize)
}

func (n *noopForecastCache) Get(ctx context.Context, filter repository.DemandFilter, horizon int) (domain.ForecastResult, bool, error) {
	return domain.ForecastResult{}, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, filter repository.DemandFilter, horizon int, result domain.ForecastResult) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildForecastKey(filter repository.DemandFilter, horizon int) string {
	return fmt.Sprintf("%s:%s", forecastKeyPrefix, forecastFilterHash(filter, horizon))
}

func forecastFilterHash(filter repository.DemandFilter, horizon int) string {
	parts := []string{fmt.Sprintf("horizon=%d", horizon)}

	if filter.ProductID != "" {
		parts = append(parts, "product="+strings.TrimSpace(filter.ProductID))
	}
	if filter.CategoryID != "" {
		parts = append(parts, "category="+strings.TrimSpace(filter.CategoryID))
	}
	if filter.WarehouseID != "" {
		parts = append(parts, "warehouse="+strings.TrimSpace(filter.WarehouseID))
	}
	if filter.RegionID != "" {
		parts = append(parts, "region="+strings.TrimSpace(filter.RegionID))
	}
	if filter.Channel != "" {
		parts = append(parts, "channel="+strings.ToLower(strings.TrimSpace(filter.Channel)))
	}
	if filter.Granularity != "" {
		parts = append(parts, "granularity="+string(filter.Granularity))
	}
	if !filter.StartDate.IsZero() {
		parts = append(parts, "start="+filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		parts = append(parts, "end="+filter.EndDate.Format("2006-01-02"))
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
