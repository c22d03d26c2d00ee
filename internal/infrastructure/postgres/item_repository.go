package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, classification, unit, cost, price, location, reorder_point, archived_at, created_at, updated_at`

// Create persiste un artículo nuevo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Classification, item.Unit,
		item.Cost, item.Price, item.Location, item.ReorderPoint,
		item.ArchivedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve nil sin error si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE).
// Serializa los appends del libro por artículo.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) get(ctx context.Context, query, id string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Classification, &it.Unit,
		&it.Cost, &it.Price, &it.Location, &it.ReorderPoint,
		&it.ArchivedAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List lista artículos no archivados, opcionalmente por clasificación.
func (r *ItemRepo) List(ctx context.Context, classification string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE archived_at IS NULL`
	args := []any{}
	pos := 1
	if classification != "" {
		query += fmt.Sprintf(" AND classification = $%d", pos)
		args = append(args, classification)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Classification, &it.Unit,
			&it.Cost, &it.Price, &it.Location, &it.ReorderPoint,
			&it.ArchivedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateMetadata actualiza solo metadatos. La cantidad disponible no existe
// como columna escribible: es un plegado del libro.
func (r *ItemRepo) UpdateMetadata(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE inventory_items
		SET name = $2, cost = $3, price = $4, location = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Cost, item.Price, item.Location, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Archive marca el artículo como archivado (soft-delete).
func (r *ItemRepo) Archive(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET archived_at = now(), updated_at = now() WHERE id = $1 AND archived_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive item: %w", err)
	}
	return nil
}

// Stats agrega el total por clasificación plegando stock_movements en la
// propia consulta (sin agregados almacenados).
func (r *ItemRepo) Stats(ctx context.Context) ([]repository.ClassificationStat, error) {
	query := `
		SELECT i.classification, COUNT(DISTINCT i.id),
		       COALESCE(SUM(CASE WHEN m.direction = 'IN' THEN m.quantity
		                         WHEN m.direction = 'OUT' THEN -m.quantity END), 0)
		FROM inventory_items i
		LEFT JOIN stock_movements m ON m.item_id = i.id
		WHERE i.archived_at IS NULL
		GROUP BY i.classification
		ORDER BY i.classification`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("item stats: %w", err)
	}
	defer rows.Close()
	var stats []repository.ClassificationStat
	for rows.Next() {
		var s repository.ClassificationStat
		if err := rows.Scan(&s.Classification, &s.Items, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ListBelowReorder devuelve artículos bajo su punto de reorden, mayor déficit
// primero.
func (r *ItemRepo) ListBelowReorder(ctx context.Context, limit, offset int) ([]repository.LowStockItem, error) {
	query := `
		SELECT i.id, i.name, i.classification, i.reorder_point,
		       COALESCE(SUM(CASE WHEN m.direction = 'IN' THEN m.quantity
		                         WHEN m.direction = 'OUT' THEN -m.quantity END), 0) AS on_hand
		FROM inventory_items i
		LEFT JOIN stock_movements m ON m.item_id = i.id
		WHERE i.archived_at IS NULL AND i.reorder_point > 0
		GROUP BY i.id, i.name, i.classification, i.reorder_point
		HAVING COALESCE(SUM(CASE WHEN m.direction = 'IN' THEN m.quantity
		                         WHEN m.direction = 'OUT' THEN -m.quantity END), 0) < i.reorder_point
		ORDER BY i.reorder_point - on_hand DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list below reorder: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var l repository.LowStockItem
		if err := rows.Scan(&l.ItemID, &l.Name, &l.Classification, &l.ReorderPoint, &l.QuantityOnHand); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
