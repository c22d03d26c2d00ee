package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo de inventario de la explotación (semilla, ostra
// en engorde, material). La cantidad disponible NO es un campo propio: se
// deriva siempre del libro de movimientos (sum IN - sum OUT). Cualquier
// cantidad materializada es una caché reconstruible por replay.
type Item struct {
	ID             string
	Name           string
	Classification string          // TRIPLOID | DIPLOID
	Unit           string          // docena, kg, malla...
	Cost           decimal.Decimal // precio de costo
	Price          decimal.Decimal // precio de venta
	Location       string          // ubicación de almacenaje
	ReorderPoint   int64           // umbral de reposición
	ArchivedAt     *time.Time      // soft-delete: nunca se borra mientras existan movimientos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Archived indica si el artículo está archivado (no acepta nuevos movimientos).
func (i *Item) Archived() bool {
	return i.ArchivedAt != nil
}
