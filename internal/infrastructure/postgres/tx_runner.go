package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// frontera atómica del motor: Transfer y Reorganizer dependen de que todo lo
// que pase por aquí se confirme o se revierta en bloque.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.Repos{
		Items:     NewItemRepository(tx),
		Movements: NewMovementRepository(tx),
		Tables:    NewTableRepository(tx),
		Cells:     NewCellRepository(tx),
		Transfers: NewTransferRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
