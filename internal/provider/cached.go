package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trogers1052/stock-price-ingestor/internal/models"
)

// CachedFetcher wraps a Fetcher with a Redis cache so repeated runs within
// the TTL reuse the provider response. Cache failures degrade to a direct
// fetch; they never fail the run.
type CachedFetcher struct {
	inner  Fetcher
	client *redis.Client
	ttl    time.Duration
}

// NewCachedFetcher creates a caching fetcher around inner
func NewCachedFetcher(inner Fetcher, client *redis.Client, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// FetchDaily returns the cached series for symbol+window if present,
// otherwise delegates to the inner fetcher and caches the result
func (c *CachedFetcher) FetchDaily(ctx context.Context, symbol string, window Window) ([]models.PricePoint, error) {
	key := c.cacheKey(symbol, window)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var points []models.PricePoint
		if err := json.Unmarshal(cached, &points); err == nil {
			return points, nil
		}
		log.Printf("Warning: discarding unreadable cache entry %s", key)
	} else if err != redis.Nil {
		log.Printf("Warning: cache lookup failed for %s: %v", key, err)
	}

	points, err := c.inner.FetchDaily(ctx, symbol, window)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(points); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("Warning: failed to cache series for %s: %v", key, err)
		}
	}
	return points, nil
}

func (c *CachedFetcher) cacheKey(symbol string, window Window) string {
	// Day-scoped so period-mode windows roll over with the calendar
	return fmt.Sprintf("prices:%s:%s:%s", symbol, window, time.Now().UTC().Format(dateLayout))
}
