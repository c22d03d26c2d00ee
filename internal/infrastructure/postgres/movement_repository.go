package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. El constraint único (item_id, reference) es
// el guard de idempotencia: su violación se traduce a ErrDuplicateReference.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, direction, quantity, reference, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ItemID, movement.Direction, movement.Quantity,
		movement.Reference, movement.Note, movement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByReference busca un movimiento por su clave de idempotencia.
func (r *MovementRepo) GetByReference(ctx context.Context, itemID, reference string) (*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, direction, quantity, reference, note, created_at
		FROM stock_movements WHERE item_id = $1 AND reference = $2`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, itemID, reference).Scan(
		&m.ID, &m.ItemID, &m.Direction, &m.Quantity, &m.Reference, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by reference: %w", err)
	}
	return &m, nil
}

// QuantityOnHand pliega el libro del artículo: sum(IN) - sum(OUT).
func (r *MovementRepo) QuantityOnHand(ctx context.Context, itemID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE item_id = $1`
	var qty int64
	if err := r.q.QueryRow(ctx, query, itemID).Scan(&qty); err != nil {
		return 0, fmt.Errorf("quantity on hand: %w", err)
	}
	return qty, nil
}

// ListByItem historial cronológico ascendente, reanudable con since + offset.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, direction, quantity, reference, note, created_at
		FROM stock_movements WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *since)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Direction, &m.Quantity,
			&m.Reference, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
