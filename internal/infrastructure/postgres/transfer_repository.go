package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, source_table_id, destination_table_id, quantity, reference, notes, created_at, created_by`

// Create persiste el registro de traslado. La referencia, si viene, es única:
// su violación se traduce a ErrDuplicateReference.
func (r *TransferRepo) Create(ctx context.Context, transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	reference := (*string)(nil)
	if transfer.Reference != "" {
		reference = &transfer.Reference
	}
	createdBy := (*string)(nil)
	if transfer.CreatedBy != "" {
		createdBy = &transfer.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.SourceID, transfer.DestID, transfer.Quantity,
		reference, transfer.Notes, transfer.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. Devuelve nil sin error si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetByReference busca un traslado por su clave de idempotencia.
func (r *TransferRepo) GetByReference(ctx context.Context, reference string) (*entity.Transfer, error) {
	return r.get(ctx, `SELECT `+transferColumns+` FROM transfers WHERE reference = $1`, reference)
}

func (r *TransferRepo) get(ctx context.Context, query, arg string) (*entity.Transfer, error) {
	var t entity.Transfer
	var reference, createdBy *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.SourceID, &t.DestID, &t.Quantity,
		&reference, &t.Notes, &t.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if reference != nil {
		t.Reference = *reference
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}

// ListByTable lista traslados donde la mesa es origen o destino, del más
// reciente al más antiguo.
func (r *TransferRepo) ListByTable(ctx context.Context, tableID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfers
		WHERE source_table_id = $1 OR destination_table_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tableID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		var reference, createdBy *string
		if err := rows.Scan(&t.ID, &t.SourceID, &t.DestID, &t.Quantity,
			&reference, &t.Notes, &t.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		if reference != nil {
			t.Reference = *reference
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
