package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. Solo hay Create: las entradas nunca se mutan ni se borran.
type MovementRepository interface {
	// Create persiste un movimiento. Devuelve domain.ErrDuplicateReference si
	// ya existe la pareja (item_id, reference).
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByReference(ctx context.Context, itemID, reference string) (*entity.StockMovement, error)
	// QuantityOnHand pliega el libro del artículo: sum(IN) - sum(OUT).
	QuantityOnHand(ctx context.Context, itemID string) (int64, error)
	// ListByItem devuelve el historial cronológico ascendente, reanudable por
	// since + offset.
	ListByItem(ctx context.Context, itemID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
