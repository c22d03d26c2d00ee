package repository

import (
	"context"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

// CellRepository define el puerto de persistencia para celdas. Las celdas son
// propiedad exclusiva de su mesa: se reemplazan en lote (Reorganizer) o se
// añaden de una en una al final de la numeración.
type CellRepository interface {
	Create(ctx context.Context, cell *entity.Cell) error
	// ReplaceForTable borra todas las celdas de la mesa e inserta el lote nuevo
	// en una sola operación lógica (el caller aporta la transacción).
	ReplaceForTable(ctx context.Context, tableID string, cells []*entity.Cell) error
	GetByID(ctx context.Context, id string) (*entity.Cell, error)
	// MaxNumber devuelve el mayor cell_number de la mesa (0 si no hay celdas).
	MaxNumber(ctx context.Context, tableID string) (int, error)
	// ListByTable ordena por cell_number ascendente.
	ListByTable(ctx context.Context, tableID string) ([]*entity.Cell, error)
	UpdateStatus(ctx context.Context, cell *entity.Cell) error
	// CountNotEmpty cuenta celdas con estado distinto de EMPTY (guard de borrado).
	CountNotEmpty(ctx context.Context, tableID string) (int, error)
	DeleteByTable(ctx context.Context, tableID string) error
}
