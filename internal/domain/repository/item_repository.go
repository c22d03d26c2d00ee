package repository

import (
	"context"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

// ClassificationStat total de existencias agrupado por clasificación,
// calculado en lectura plegando el libro de movimientos (sin agregado almacenado).
type ClassificationStat struct {
	Classification string
	Items          int
	TotalQuantity  int64
}

// LowStockItem resultado crudo para un artículo por debajo de su punto de reorden.
type LowStockItem struct {
	ItemID         string
	Name           string
	Classification string
	QuantityOnHand int64
	ReorderPoint   int64
}

// ItemRepository define el puerto de persistencia para artículos (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para
	// serializar los appends del libro por artículo.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, classification string, limit, offset int) ([]*entity.Item, error)
	UpdateMetadata(ctx context.Context, item *entity.Item) error
	Archive(ctx context.Context, id string) error

	// Stats agrega el total por clasificación plegando el libro en la consulta.
	Stats(ctx context.Context) ([]ClassificationStat, error)
	// ListBelowReorder devuelve los artículos cuyo disponible es inferior a su
	// punto de reorden, ordenados por mayor déficit primero.
	ListBelowReorder(ctx context.Context, limit, offset int) ([]LowStockItem, error)
}
