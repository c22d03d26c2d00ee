package entity

import "time"

// Direcciones de movimiento del libro de inventario.
const (
	DirectionIN  = "IN"
	DirectionOUT = "OUT"
)

// ValidDirection indica si la dirección es conocida.
func ValidDirection(d string) bool {
	return d == DirectionIN || d == DirectionOUT
}

// StockMovement es una entrada del libro de movimientos: append-only, nunca se
// muta ni se borra. Reference es única por artículo y habilita el replay
// idempotente de peticiones reintentadas.
type StockMovement struct {
	ID        string
	ItemID    string
	Direction string // IN | OUT
	Quantity  int64  // siempre positiva; el signo lo da Direction
	Reference string
	Note      string
	CreatedAt time.Time
}

// Delta devuelve la cantidad con signo según la dirección.
func (m *StockMovement) Delta() int64 {
	if m.Direction == DirectionOUT {
		return -m.Quantity
	}
	return m.Quantity
}
