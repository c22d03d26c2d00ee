package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
	"github.com/jhoicas/Ostricola-api/pkg/logger"
)

// Reconciler recalcula periódicamente el disponible de cada artículo plegando
// el libro y refresca la caché. Trabajo opcional de fondo: el motor es
// correcto sin él, solo acelera las lecturas.
type Reconciler struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	cache    ports.QuantityCache
	interval time.Duration
	log      *logger.Logger
}

// NewReconciler construye el job. interval <= 0 usa 5 minutos.
func NewReconciler(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	cache ports.QuantityCache,
	interval time.Duration,
	log *logger.Logger,
) *Reconciler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Reconciler{itemRepo: itemRepo, movRepo: movRepo, cache: cache, interval: interval, log: log}
}

// Run bloquea hasta que ctx se cancele, reconciliando en cada tick.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) {
	const pageSize = 200
	offset := 0
	refreshed := 0
	for {
		items, err := r.itemRepo.List(ctx, "", pageSize, offset)
		if err != nil {
			r.log.Warn().Err(err).Msg("reconciliación: listar artículos")
			return
		}
		for _, item := range items {
			qty, err := r.movRepo.QuantityOnHand(ctx, item.ID)
			if err != nil {
				r.log.Warn().Err(err).Str("item_id", item.ID).Msg("reconciliación: plegar libro")
				continue
			}
			r.cache.Set(ctx, item.ID, qty)
			refreshed++
		}
		if len(items) < pageSize {
			break
		}
		offset += pageSize
	}
	r.log.Debug().Int("items", refreshed).Msg("caché de disponibles reconciliada")
}
