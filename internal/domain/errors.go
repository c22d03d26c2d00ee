package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrClassificationMismatch = errors.New("clasificación incompatible entre mesas")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrDuplicateReference     = errors.New("referencia duplicada con datos distintos")
	ErrInvalidCellCount       = errors.New("número de celdas inválido")
	ErrInvalidTransition      = errors.New("transición de estado de celda no permitida")
	ErrNotEmpty               = errors.New("la mesa tiene celdas ocupadas")
	ErrForbidden              = errors.New("acceso denegado")
	// ErrPartialCommit señala una operación atómica que quedó aplicada a medias.
	// No es un flujo normal: si aparece hay un bug en el motor o en la BD.
	ErrPartialCommit = errors.New("commit parcial detectado")
)
