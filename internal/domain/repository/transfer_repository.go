package repository

import (
	"context"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traslados (DIP).
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetByReference(ctx context.Context, reference string) (*entity.Transfer, error)
	// ListByTable devuelve traslados donde la mesa es origen o destino,
	// del más reciente al más antiguo.
	ListByTable(ctx context.Context, tableID string, limit, offset int) ([]*entity.Transfer, error)
}
