package facilities

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
)

type cachedLocator struct {
	inner  Locator
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// WithCache wraps a Locator with a Redis result cache keyed by category and
// coordinates rounded to ~100m. Cache failures fall through to the inner
// locator; lookups stay best-effort end to end.
func WithCache(inner Locator, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) Locator {
	return &cachedLocator{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With("system", "facilities-cache"),
	}
}

func (c *cachedLocator) FindNearby(ctx context.Context, category taxonomy.Category, location LatLng) []Facility {
	key := cacheKey(category, location)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []Facility
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached
		}
		c.logger.Warn("discarding malformed cache entry", "key", key)
	}

	facilities := c.inner.FindNearby(ctx, category, location)

	if raw, err := json.Marshal(facilities); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return facilities
}

func cacheKey(category taxonomy.Category, location LatLng) string {
	return fmt.Sprintf("facilities:%s:%.3f,%.3f", category, location.Lat, location.Lng)
}
