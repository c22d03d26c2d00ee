package ports

import (
	"context"

	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Tables    repository.TableRepository
	Cells     repository.CellRepository
	Transfers repository.TransferRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: Commit si fn devuelve
// nil, Rollback en caso contrario. Es la única frontera transaccional del
// motor de asignación e inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
