package table

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

// UseCase registro de mesas de cultivo. El borrado es una operación atómica
// del agregado: verificación de vacío + cascada de celdas + borrado de la
// mesa en una sola transacción.
type UseCase struct {
	txRunner  ports.TxRunner
	tableRepo repository.TableRepository
	itemRepo  repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, tableRepo repository.TableRepository, itemRepo repository.ItemRepository) *UseCase {
	return &UseCase{txRunner: txRunner, tableRepo: tableRepo, itemRepo: itemRepo}
}

// Create da de alta una mesa.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidClassification(in.Classification) {
		return nil, domain.ErrInvalidInput
	}
	if in.RowIndex < 0 || in.ColumnIndex < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemID != "" {
		item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.Classification != in.Classification {
			return nil, domain.ErrClassificationMismatch
		}
	}
	now := time.Now()
	t := &entity.Table{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Classification: in.Classification,
		RowIndex:       in.RowIndex,
		ColumnIndex:    in.ColumnIndex,
		ItemID:         in.ItemID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.tableRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTableResponse(t), nil
}

// Get obtiene una mesa por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TableResponse, error) {
	t, err := uc.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTableResponse(t), nil
}

// ListByClassification lista mesas ordenadas por (column_index, row_index).
// Con classification vacía lista todas.
func (uc *UseCase) ListByClassification(ctx context.Context, classification string) (*dto.TableListResponse, error) {
	if classification != "" && !entity.ValidClassification(classification) {
		return nil, domain.ErrInvalidInput
	}
	tables, err := uc.tableRepo.ListByClassification(ctx, classification)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, *toTableResponse(t))
	}
	return &dto.TableListResponse{Tables: out}, nil
}

// Delete borra la mesa y sus celdas en una transacción. Falla con ErrNotEmpty
// si alguna celda tiene estado distinto de EMPTY.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		t, err := r.Tables.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		busy, err := r.Cells.CountNotEmpty(ctx, id)
		if err != nil {
			return err
		}
		if busy > 0 {
			return domain.ErrNotEmpty
		}
		if err := r.Cells.DeleteByTable(ctx, id); err != nil {
			return err
		}
		return r.Tables.Delete(ctx, id)
	})
}

func toTableResponse(t *entity.Table) *dto.TableResponse {
	return &dto.TableResponse{
		ID:             t.ID,
		Name:           t.Name,
		Classification: t.Classification,
		RowIndex:       t.RowIndex,
		ColumnIndex:    t.ColumnIndex,
		ItemID:         t.ItemID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
