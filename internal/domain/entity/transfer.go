package entity

import "time"

// Transfer es el registro de auditoría de un traslado entre dos mesas de la
// misma clasificación. Referencia ambas mesas pero no las posee. Es inválido
// que exista un Transfer sin sus efectos (celdas + libro) ya confirmados, y
// viceversa: se escribe en la misma transacción que ellos.
type Transfer struct {
	ID        string
	SourceID  string // mesa origen
	DestID    string // mesa destino
	Quantity  int64
	Reference string // clave de idempotencia aportada por el caller (opcional)
	Notes     string
	CreatedAt time.Time
	CreatedBy string // UserID
}
