package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

var _ repository.CellRepository = (*CellRepo)(nil)

// CellRepo implementación de CellRepository sobre PostgreSQL (usable con pool o tx).
type CellRepo struct {
	q Querier
}

// NewCellRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCellRepository(q Querier) *CellRepo {
	return &CellRepo{q: q}
}

const cellColumns = `id, table_id, cell_number, status, quantity, created_at, updated_at`

// Create persiste una celda nueva. El constraint único (table_id, cell_number)
// respalda la numeración contigua frente a carreras.
func (r *CellRepo) Create(ctx context.Context, cell *entity.Cell) error {
	query := `
		INSERT INTO table_cells (` + cellColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		cell.ID, cell.TableID, cell.CellNumber, cell.Status, cell.Quantity,
		cell.CreatedAt, cell.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cell: %w", err)
	}
	return nil
}

// ReplaceForTable borra todas las celdas de la mesa e inserta el lote nuevo.
// El caller aporta la transacción (TxRunner): borrado e inserciones se
// confirman o revierten juntos.
func (r *CellRepo) ReplaceForTable(ctx context.Context, tableID string, cells []*entity.Cell) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM table_cells WHERE table_id = $1`, tableID); err != nil {
		return fmt.Errorf("delete cells: %w", err)
	}
	for _, cell := range cells {
		if err := r.Create(ctx, cell); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una celda por ID. Devuelve nil sin error si no existe.
func (r *CellRepo) GetByID(ctx context.Context, id string) (*entity.Cell, error) {
	var c entity.Cell
	err := r.q.QueryRow(ctx, `SELECT `+cellColumns+` FROM table_cells WHERE id = $1`, id).Scan(
		&c.ID, &c.TableID, &c.CellNumber, &c.Status, &c.Quantity, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cell: %w", err)
	}
	return &c, nil
}

// MaxNumber devuelve el mayor cell_number de la mesa (0 si no hay celdas).
func (r *CellRepo) MaxNumber(ctx context.Context, tableID string) (int, error) {
	var max int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(cell_number), 0) FROM table_cells WHERE table_id = $1`, tableID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max cell number: %w", err)
	}
	return max, nil
}

// ListByTable ordena por cell_number ascendente.
func (r *CellRepo) ListByTable(ctx context.Context, tableID string) ([]*entity.Cell, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+cellColumns+` FROM table_cells WHERE table_id = $1 ORDER BY cell_number`, tableID)
	if err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cell
	for rows.Next() {
		var c entity.Cell
		if err := rows.Scan(&c.ID, &c.TableID, &c.CellNumber, &c.Status,
			&c.Quantity, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza estado y cantidad de la celda.
func (r *CellRepo) UpdateStatus(ctx context.Context, cell *entity.Cell) error {
	query := `
		UPDATE table_cells SET status = $2, quantity = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, cell.ID, cell.Status, cell.Quantity, cell.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cell: %w", err)
	}
	return nil
}

// CountNotEmpty cuenta celdas con estado distinto de EMPTY (guard de borrado de mesa).
func (r *CellRepo) CountNotEmpty(ctx context.Context, tableID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM table_cells WHERE table_id = $1 AND status <> 'EMPTY'`, tableID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count busy cells: %w", err)
	}
	return count, nil
}

// DeleteByTable borra todas las celdas de la mesa (cascada del agregado).
func (r *CellRepo) DeleteByTable(ctx context.Context, tableID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM table_cells WHERE table_id = $1`, tableID)
	if err != nil {
		return fmt.Errorf("delete cells: %w", err)
	}
	return nil
}
