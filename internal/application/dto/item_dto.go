package dto

import "time"

// RegisterItemRequest entrada para registrar un artículo de inventario.
type RegisterItemRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Classification string `json:"classification" validate:"required,oneof=TRIPLOID DIPLOID"`
	Unit           string `json:"unit" validate:"required"`
	Cost           string `json:"cost"`          // decimal como string
	Price          string `json:"selling_price"` // decimal como string
	Location       string `json:"location"`
	ReorderPoint   int64  `json:"reorder_point"`
}

// UpdateItemRequest metadatos editables de un artículo. La cantidad disponible
// no aparece: nunca se escribe directamente.
type UpdateItemRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Cost     *string `json:"cost"`
	Price    *string `json:"selling_price"`
	Location *string `json:"location"`
}

// AdjustmentRequest ajuste manual de existencias. El signo de Delta decide la
// dirección del movimiento (positivo IN, negativo OUT).
type AdjustmentRequest struct {
	Delta     int64  `json:"delta" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	Note      string `json:"note"`
}

// ItemResponse salida de un artículo, decorada con el disponible vivo.
type ItemResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Classification string     `json:"classification"`
	Unit           string     `json:"unit"`
	Cost           string     `json:"cost"`
	Price          string     `json:"selling_price"`
	Location       string     `json:"location"`
	ReorderPoint   int64      `json:"reorder_point"`
	QuantityOnHand int64      `json:"quantity_on_hand"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ClassificationStatDTO total por clasificación.
type ClassificationStatDTO struct {
	Classification string `json:"classification"`
	Items          int    `json:"items"`
	TotalQuantity  int64  `json:"total_quantity"`
}

// StatsResponse estadísticas de inventario calculadas en lectura.
type StatsResponse struct {
	ByClassification []ClassificationStatDTO `json:"by_classification"`
	BelowReorder     int                     `json:"below_reorder_point"`
}

// LowStockItemDTO artículo bajo su punto de reorden.
type LowStockItemDTO struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	Classification string `json:"classification"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
	ReorderPoint   int64  `json:"reorder_point"`
}

// MovementResponse entrada del libro en respuestas de historial.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de un artículo.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}
