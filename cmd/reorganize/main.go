package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/application/reorg"
	"github.com/jhoicas/Ostricola-api/internal/infrastructure/cache"
	"github.com/jhoicas/Ostricola-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ostricola-api/pkg/config"
	"github.com/jhoicas/Ostricola-api/pkg/logger"
)

// Reorganización de todas las cuadrículas desde la línea de comandos, para
// operarla por cron o a mano sin pasar por la API.
func main() {
	cells := flag.Int("cells", 0, "celdas por mesa (0 = valor configurado)")
	ratio := flag.Float64("ratio", 0, "ratio de llenado inicial (0 = valor configurado)")
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo de la operación")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var notifier ports.Notifier = ports.NopNotifier{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		notifier = cache.NewEventPublisher(rdb, log)
	}

	uc := reorg.NewUseCase(postgres.NewTxRunner(pool), reorg.Options{
		CellsPerTable: cfg.Reorg.CellsPerTable,
		FillRatio:     cfg.Reorg.FillRatio,
	}, notifier)

	var opts *reorg.Options
	if *cells > 0 || *ratio > 0 {
		opts = &reorg.Options{CellsPerTable: *cells, FillRatio: *ratio}
	}

	out, err := uc.RebuildAll(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("reorganización fallida, nada aplicado")
	}
	log.Info().
		Int("tables", len(out.Tables)).
		Int("cells", out.Total).
		Msg("reorganización completada")
}
