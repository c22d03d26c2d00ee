package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo implementación de TableRepository sobre PostgreSQL (usable con pool o tx).
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

const tableColumns = `id, name, classification, row_index, column_index, item_id, created_at, updated_at`

// Create persiste una mesa nueva.
func (r *TableRepo) Create(ctx context.Context, table *entity.Table) error {
	query := `
		INSERT INTO tables (` + tableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	itemID := (*string)(nil)
	if table.ItemID != "" {
		itemID = &table.ItemID
	}
	_, err := r.q.Exec(ctx, query,
		table.ID, table.Name, table.Classification,
		table.RowIndex, table.ColumnIndex, itemID,
		table.CreatedAt, table.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert table: %w", err)
	}
	return nil
}

// GetByID obtiene una mesa por ID. Devuelve nil sin error si no existe.
func (r *TableRepo) GetByID(ctx context.Context, id string) (*entity.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la mesa bloqueando su fila (SELECT FOR UPDATE).
// Serializa appendCell, rebuild y traslados que tocan sus celdas.
func (r *TableRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1 FOR UPDATE`, id)
}

func (r *TableRepo) get(ctx context.Context, query, id string) (*entity.Table, error) {
	var t entity.Table
	var itemID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Classification, &t.RowIndex, &t.ColumnIndex,
		&itemID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	if itemID != nil {
		t.ItemID = *itemID
	}
	return &t, nil
}

// ListByClassification ordena por (column_index, row_index): el orden espacial
// de planta.
func (r *TableRepo) ListByClassification(ctx context.Context, classification string) ([]*entity.Table, error) {
	query := `
		SELECT ` + tableColumns + ` FROM tables
		WHERE classification = $1
		ORDER BY column_index, row_index`
	rows, err := r.q.Query(ctx, query, classification)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return scanTables(rows)
}

// ListAllForUpdate lista todas las mesas bloqueando sus filas en orden de ID:
// orden de bloqueo estable compartido con el coordinador de traslados.
func (r *TableRepo) ListAllForUpdate(ctx context.Context) ([]*entity.Table, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY id FOR UPDATE`)
	if err != nil {
		return nil, fmt.Errorf("list tables for update: %w", err)
	}
	return scanTables(rows)
}

func scanTables(rows pgx.Rows) ([]*entity.Table, error) {
	defer rows.Close()
	var list []*entity.Table
	for rows.Next() {
		var t entity.Table
		var itemID *string
		if err := rows.Scan(&t.ID, &t.Name, &t.Classification, &t.RowIndex,
			&t.ColumnIndex, &itemID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		if itemID != nil {
			t.ItemID = *itemID
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina una mesa por ID. El caso de uso garantiza que las celdas ya
// fueron borradas en la misma transacción.
func (r *TableRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	return nil
}
