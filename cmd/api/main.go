package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Ostricola-api/internal/application/grid"
	"github.com/jhoicas/Ostricola-api/internal/application/item"
	"github.com/jhoicas/Ostricola-api/internal/application/ledger"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/application/reorg"
	"github.com/jhoicas/Ostricola-api/internal/application/table"
	"github.com/jhoicas/Ostricola-api/internal/application/transfer"
	"github.com/jhoicas/Ostricola-api/internal/infrastructure/cache"
	"github.com/jhoicas/Ostricola-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Ostricola-api/internal/interfaces/http"
	"github.com/jhoicas/Ostricola-api/pkg/config"
	"github.com/jhoicas/Ostricola-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	tableRepo := postgres.NewTableRepository(pool)
	cellRepo := postgres.NewCellRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin REDIS_ADDR el motor usa los Nop y consulta el
	// disponible siempre contra PostgreSQL.
	var qtyCache ports.QuantityCache = ports.NopQuantityCache{}
	var notifier ports.Notifier = ports.NopNotifier{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		qtyCache = cache.NewQuantityCache(rdb, ttl, log)
		notifier = cache.NewEventPublisher(rdb, log)
	}

	ledgerUC := ledger.NewUseCase(txRunner, itemRepo, movRepo, qtyCache, notifier)
	itemUC := item.NewUseCase(itemRepo, ledgerUC)
	tableUC := table.NewUseCase(txRunner, tableRepo, itemRepo)
	gridUC := grid.NewUseCase(txRunner, tableRepo, cellRepo)
	transferUC := transfer.NewUseCase(txRunner, tableRepo, transferRepo, ledgerUC, notifier)
	reorgUC := reorg.NewUseCase(txRunner, reorg.Options{
		CellsPerTable: cfg.Reorg.CellsPerTable,
		FillRatio:     cfg.Reorg.FillRatio,
	}, notifier)

	// Con caché activa, un job de fondo reconcilia los disponibles cacheados
	// contra las sumas del libro.
	if cfg.Redis.Addr != "" {
		reconciler := ledger.NewReconciler(itemRepo, movRepo, qtyCache, 5*time.Minute, log)
		go reconciler.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ostricola API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		TableUC:      tableUC,
		GridUC:       gridUC,
		TransferUC:   transferUC,
		ReorgUC:      reorgUC,
		JWTSecret:    cfg.JWT.Secret,
		DefaultRatio: cfg.Reorg.FillRatio,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
