package grid

import "github.com/jhoicas/Ostricola-api/internal/domain/entity"

// FillPolicy decide el estado inicial de la celda idx (1-based) de un total
// de celdas al reconstruir una cuadrícula. Debe ser determinista.
type FillPolicy func(idx, total int) string

// RatioPolicy marca como FILLED la primera fracción ratio de las celdas y el
// resto como EMPTY. El ratio por defecto de la explotación (0.60) viene de la
// configuración, no está cableado aquí.
func RatioPolicy(ratio float64) FillPolicy {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return func(idx, total int) string {
		filled := int(float64(total)*ratio + 0.5)
		if idx <= filled {
			return entity.CellStatusFilled
		}
		return entity.CellStatusEmpty
	}
}

// AllEmptyPolicy deja todas las celdas en EMPTY.
func AllEmptyPolicy() FillPolicy {
	return func(idx, total int) string { return entity.CellStatusEmpty }
}
