package cache

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ostricola-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient conecta a Redis con la configuración de la app y verifica
// la conexión con un Ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
