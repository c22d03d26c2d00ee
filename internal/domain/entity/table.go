package entity

import "time"

// Table representa una mesa de cultivo. RowIndex/ColumnIndex son posición
// lógica para ordenación espacial (una clasificación por columna visual).
// ItemID, si está definido, es el artículo que respalda la producción de la
// mesa: los traslados generan entonces movimientos pareados en el libro.
type Table struct {
	ID             string
	Name           string
	Classification string // TRIPLOID | DIPLOID
	RowIndex       int
	ColumnIndex    int
	ItemID         string // opcional
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
