package dto

import "time"

// CreateTransferRequest entrada para un traslado entre mesas.
type CreateTransferRequest struct {
	SourceTableID      string `json:"source_table_id" validate:"required"`
	DestinationTableID string `json:"destination_table_id" validate:"required"`
	Quantity           int64  `json:"quantity" validate:"required,min=1"`
	Reference          string `json:"reference"` // clave de idempotencia (opcional)
	Notes              string `json:"notes"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID                 string    `json:"id"`
	SourceTableID      string    `json:"source_table_id"`
	DestinationTableID string    `json:"destination_table_id"`
	Quantity           int64     `json:"quantity"`
	Reference          string    `json:"reference,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// TransferListResponse traslados de una mesa (origen o destino).
type TransferListResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	Page      PageResponse       `json:"page"`
}

// ReorgTableResult celdas escritas por mesa en una reorganización.
type ReorgTableResult struct {
	TableID        string `json:"table_id"`
	Name           string `json:"name"`
	Classification string `json:"classification"`
	Cells          int    `json:"cells"`
}

// ReorgResponse resultado de una reorganización completa.
type ReorgResponse struct {
	Tables []ReorgTableResult `json:"tables"`
	Total  int                `json:"total_cells"`
	RanAt  time.Time          `json:"ran_at"`
}
