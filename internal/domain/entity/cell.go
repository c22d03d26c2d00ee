package entity

import "time"

// Estados de una celda dentro de la cuadrícula de una mesa.
const (
	CellStatusEmpty       = "EMPTY"
	CellStatusFilled      = "FILLED"
	CellStatusHarvested   = "HARVESTED"
	CellStatusMaintenance = "MAINTENANCE"
)

// ValidCellStatus indica si el estado es conocido.
func ValidCellStatus(s string) bool {
	switch s {
	case CellStatusEmpty, CellStatusFilled, CellStatusHarvested, CellStatusMaintenance:
		return true
	}
	return false
}

// CanTransition valida el ciclo de vida de la celda:
// EMPTY → FILLED → HARVESTED, y cualquier estado → MAINTENANCE → EMPTY.
func CanTransition(from, to string) bool {
	if !ValidCellStatus(from) || !ValidCellStatus(to) {
		return false
	}
	if to == CellStatusMaintenance {
		return from != CellStatusMaintenance
	}
	switch from {
	case CellStatusEmpty:
		return to == CellStatusFilled
	case CellStatusFilled:
		return to == CellStatusHarvested
	case CellStatusMaintenance:
		return to == CellStatusEmpty
	}
	return false
}

// Cell es una celda numerada de la cuadrícula de una mesa. Los números son
// 1-based, únicos y contiguos dentro de la mesa: {1..N} sin huecos.
type Cell struct {
	ID         string
	TableID    string
	CellNumber int
	Status     string
	Quantity   int64 // cantidad alojada (0 si vacía)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
