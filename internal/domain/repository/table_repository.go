package repository

import (
	"context"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

// TableRepository define el puerto de persistencia para mesas de cultivo (DIP).
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id string) (*entity.Table, error)
	// GetByIDForUpdate bloquea la fila de la mesa (SELECT FOR UPDATE) para
	// serializar appendCell y los traslados que tocan sus celdas.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Table, error)
	// ListByClassification ordena por (column_index, row_index).
	ListByClassification(ctx context.Context, classification string) ([]*entity.Table, error)
	// ListAllForUpdate lista todas las mesas bloqueándolas en orden de ID
	// (orden estable de bloqueo para evitar deadlocks con los traslados).
	ListAllForUpdate(ctx context.Context) ([]*entity.Table, error)
	Delete(ctx context.Context, id string) error
}
