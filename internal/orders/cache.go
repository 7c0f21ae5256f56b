package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/orderview-backend/internal/orderview"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
	"github.com/angelmondragon/orderview-backend/pkg/metrics"
	"github.com/angelmondragon/orderview-backend/pkg/redis"
)

// minGenerationTTL keeps a generation marker alive well past the entries
// written under it.
const minGenerationTTL = 24 * time.Hour

// viewCache stores exported order lines as JSON. Every failure is logged and
// reported as a miss so callers fall back to building from the database.
//
// Entries are keyed by a per-order generation. invalidate moves the order to
// a new generation, so a view built before a refund and stored after it lands
// under a key no reader asks for.
type viewCache struct {
	store   redis.CacheStore
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.OrderViewMetrics
}

func (c *viewCache) generationKey(orderID int64) string {
	return c.store.OrderLinesKey(orderID) + ":gen"
}

func (c *viewCache) entryKey(orderID int64, generation string) string {
	return c.store.OrderLinesKey(orderID) + ":" + generation
}

// generation returns the current generation of orderID; "0" until the first
// invalidation. An unreadable marker yields "" and disables the cache for the
// call.
func (c *viewCache) generation(ctx context.Context, orderID int64) string {
	if c == nil || c.store == nil {
		return ""
	}
	gen, err := c.store.Get(ctx, c.generationKey(orderID))
	switch {
	case errors.Is(err, redis.Nil):
		return "0"
	case err != nil:
		c.metrics.IncCache(metrics.CacheError)
		c.logError(ctx, "order lines cache generation read failed", err)
		return ""
	}
	return gen
}

func (c *viewCache) get(ctx context.Context, orderID int64, generation string) ([]orderview.Export, bool) {
	if c == nil || c.store == nil || generation == "" {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.entryKey(orderID, generation))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.metrics.IncCache(metrics.CacheMiss)
			return nil, false
		}
		c.metrics.IncCache(metrics.CacheError)
		c.logError(ctx, "order lines cache read failed", err)
		return nil, false
	}
	var exports []orderview.Export
	if err := json.Unmarshal([]byte(raw), &exports); err != nil {
		c.metrics.IncCache(metrics.CacheError)
		c.logError(ctx, "order lines cache payload invalid", err)
		return nil, false
	}
	c.metrics.IncCache(metrics.CacheHit)
	return exports, true
}

// put stores exports under the generation read before they were built.
func (c *viewCache) put(ctx context.Context, orderID int64, generation string, exports []orderview.Export) {
	if c == nil || c.store == nil || generation == "" {
		return
	}
	payload, err := json.Marshal(exports)
	if err != nil {
		c.logError(ctx, "order lines cache encode failed", err)
		return
	}
	if err := c.store.Set(ctx, c.entryKey(orderID, generation), string(payload), c.ttl); err != nil {
		c.logError(ctx, "order lines cache write failed", err)
	}
}

func (c *viewCache) invalidate(ctx context.Context, orderID int64) {
	if c == nil || c.store == nil {
		return
	}
	previous := c.generation(ctx, orderID)

	ttl := minGenerationTTL
	if c.ttl*2 > ttl {
		ttl = c.ttl * 2
	}
	if err := c.store.Set(ctx, c.generationKey(orderID), uuid.NewString(), ttl); err != nil {
		c.logError(ctx, "order lines cache invalidation failed", err)
	}
	if previous != "" {
		if err := c.store.Del(ctx, c.entryKey(orderID, previous)); err != nil {
			c.logError(ctx, "order lines cache invalidation failed", err)
		}
	}
}

func (c *viewCache) logError(ctx context.Context, msg string, err error) {
	if c.logg != nil {
		c.logg.Error(ctx, msg, err)
	}
}
