package registry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// companyKeyPrefix namespaces cached registry entries in redis.
const companyKeyPrefix = "registry:company:"

// CachedClient fronts a registry client with a redis cache. Registry data
// changes rarely; a short TTL bounds staleness without hammering the
// registry on every inbound event.
type CachedClient struct {
	next   Client
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClient(next Client, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{next: next, redis: rdb, ttl: ttl, logger: logger}
}

func (c *CachedClient) GetCompany(ctx context.Context, staticID string) (*Company, error) {
	key := companyKeyPrefix + staticID

	raw, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var company Company
		if unmarshalErr := json.Unmarshal(raw, &company); unmarshalErr == nil {
			return &company, nil
		}
		// Corrupt entry: fall through to the registry and overwrite it.
	} else if !errors.Is(err, redis.Nil) {
		// Cache unavailability must not block event processing.
		c.logger.Warn("registry cache read failed", "static_id", staticID, "error", err)
	}

	company, err := c.next.GetCompany(ctx, staticID)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(company); marshalErr == nil {
		if setErr := c.redis.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
			c.logger.Warn("registry cache write failed", "static_id", staticID, "error", setErr)
		}
	}
	return company, nil
}
