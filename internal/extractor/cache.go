package extractor

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"carmarket-api/internal/common/database"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/common/metrics"
	"carmarket-api/internal/listings"
)

const filterCachePrefix = "filter_extract:"

var whitespacePattern = regexp.MustCompile(`\s+`)

// Cache stores successful filter extractions keyed by normalized query, so
// repeated phrasings of the same search skip the generation call. It is
// strictly best-effort: a Redis failure never fails the request.
type Cache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		redis:  redis,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "extraction-cache"}),
	}
}

func (c *Cache) GetFilters(ctx context.Context, query string) (*listings.FilterSpec, bool) {
	data, err := c.redis.Get(ctx, filterCacheKey(query))
	if err != nil || data == "" {
		metrics.ExtractionCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	var spec listings.FilterSpec
	if err := json.Unmarshal([]byte(data), &spec); err != nil {
		// Stale or corrupt entry; drop it and treat as a miss.
		_ = c.redis.Del(ctx, filterCacheKey(query))
		metrics.ExtractionCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.ExtractionCacheHits.WithLabelValues("hit").Inc()
	return &spec, true
}

func (c *Cache) PutFilters(ctx context.Context, query string, spec *listings.FilterSpec) {
	data, err := json.Marshal(spec)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, filterCacheKey(query), string(data), c.ttl); err != nil {
		c.logger.Warn("failed to cache extraction", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func filterCacheKey(query string) string {
	return filterCachePrefix + normalizeQuery(query)
}

// normalizeQuery lowercases and collapses whitespace so trivially different
// phrasings share a cache entry.
func normalizeQuery(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return whitespacePattern.ReplaceAllString(normalized, " ")
}
