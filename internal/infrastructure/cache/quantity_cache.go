package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var _ ports.QuantityCache = (*QuantityCache)(nil)

// QuantityCache caché del disponible por artículo sobre Redis. Proyección
// pura del libro: un miss o un fallo de Redis degradan a plegar el libro,
// nunca a un valor incorrecto.
type QuantityCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewQuantityCache construye la caché. ttl <= 0 usa 5 minutos.
func NewQuantityCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *QuantityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QuantityCache{rdb: rdb, ttl: ttl, log: log}
}

func key(itemID string) string {
	return "ostricola:qty:" + itemID
}

// Get devuelve el disponible cacheado si existe.
func (c *QuantityCache) Get(ctx context.Context, itemID string) (int64, bool) {
	val, err := c.rdb.Get(ctx, key(itemID)).Result()
	if err != nil {
		return 0, false
	}
	qty, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return qty, true
}

// Set escribe el disponible recalculado desde el libro.
func (c *QuantityCache) Set(ctx context.Context, itemID string, qty int64) {
	if err := c.rdb.Set(ctx, key(itemID), strconv.FormatInt(qty, 10), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("item_id", itemID).Msg("caché: set disponible")
	}
}

// Invalidate expulsa la entrada tras un append al libro.
func (c *QuantityCache) Invalidate(ctx context.Context, itemID string) {
	if err := c.rdb.Del(ctx, key(itemID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("item_id", itemID).Msg("caché: invalidar disponible")
	}
}
