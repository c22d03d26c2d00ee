package dto

import "time"

// CreateTableRequest entrada para crear una mesa de cultivo.
type CreateTableRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Classification string `json:"classification" validate:"required,oneof=TRIPLOID DIPLOID"`
	RowIndex       int    `json:"row_index" validate:"min=0"`
	ColumnIndex    int    `json:"column_index" validate:"min=0"`
	ItemID         string `json:"item_id"` // opcional: artículo que respalda la producción
}

// TableResponse salida de una mesa.
type TableResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Classification string    `json:"classification"`
	RowIndex       int       `json:"row_index"`
	ColumnIndex    int       `json:"column_index"`
	ItemID         string    `json:"item_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableListResponse lista de mesas ordenadas espacialmente.
type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
}

// CellResponse salida de una celda.
type CellResponse struct {
	ID         string    `json:"id"`
	TableID    string    `json:"table_id"`
	CellNumber int       `json:"cell_number"`
	Status     string    `json:"status"`
	Quantity   int64     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CellListResponse celdas de una mesa por cell_number ascendente.
type CellListResponse struct {
	Cells []CellResponse `json:"cells"`
}

// RebuildCellsRequest reconstrucción de la cuadrícula de una mesa.
type RebuildCellsRequest struct {
	CellCount int      `json:"cell_count" validate:"required,min=1"`
	FillRatio *float64 `json:"fill_ratio"` // nil = ratio configurado
}

// AppendCellRequest alta de una celda al final de la numeración.
type AppendCellRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=EMPTY FILLED HARVESTED MAINTENANCE"`
}

// SetCellStatusRequest cambio de estado de una celda.
type SetCellStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=EMPTY FILLED HARVESTED MAINTENANCE"`
	Quantity *int64 `json:"quantity"`
}
