package grid

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	domaingrid "github.com/jhoicas/Ostricola-api/internal/domain/grid"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

// UseCase gestiona la cuadrícula de celdas de cada mesa. Invariante: tras
// cualquier Rebuild o AppendCell los números de celda de una mesa son
// exactamente {1..N}, sin duplicados ni huecos, también bajo concurrencia
// (se serializa por mesa con bloqueo de fila sobre tables).
type UseCase struct {
	txRunner  ports.TxRunner
	tableRepo repository.TableRepository
	cellRepo  repository.CellRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, tableRepo repository.TableRepository, cellRepo repository.CellRepository) *UseCase {
	return &UseCase{txRunner: txRunner, tableRepo: tableRepo, cellRepo: cellRepo}
}

// Rebuild borra las celdas existentes de la mesa y crea cellCount nuevas
// numeradas 1..cellCount, aplicando policy de forma determinista.
func (uc *UseCase) Rebuild(ctx context.Context, tableID string, cellCount int, policy domaingrid.FillPolicy) (*dto.CellListResponse, error) {
	if cellCount < 1 {
		return nil, domain.ErrInvalidCellCount
	}
	if policy == nil {
		policy = domaingrid.AllEmptyPolicy()
	}
	var cells []*entity.Cell
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		cells, err = RebuildInTx(ctx, r, tableID, cellCount, policy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCellListResponse(cells), nil
}

// RebuildInTx reconstruye la cuadrícula usando los repositorios del caller
// (misma transacción). Lo usa el Reorganizer para reconstruir todas las mesas
// en una sola unidad atómica.
func RebuildInTx(ctx context.Context, r ports.Repos, tableID string, cellCount int, policy domaingrid.FillPolicy) ([]*entity.Cell, error) {
	table, err := r.Tables.GetByIDForUpdate(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	cells := make([]*entity.Cell, 0, cellCount)
	for i := 1; i <= cellCount; i++ {
		status := policy(i, cellCount)
		if !entity.ValidCellStatus(status) {
			return nil, domain.ErrInvalidInput
		}
		cells = append(cells, &entity.Cell{
			ID:         uuid.New().String(),
			TableID:    tableID,
			CellNumber: i,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err := r.Cells.ReplaceForTable(ctx, tableID, cells); err != nil {
		return nil, err
	}
	return cells, nil
}

// AppendCell crea una celda nueva en max(cell_number)+1 (1 si no hay celdas).
// El bloqueo de la fila de la mesa garantiza la numeración contigua aun con
// appends concurrentes.
func (uc *UseCase) AppendCell(ctx context.Context, tableID, status string) (*dto.CellResponse, error) {
	if status == "" {
		status = entity.CellStatusEmpty
	}
	if !entity.ValidCellStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	var cell *entity.Cell
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		table, err := r.Tables.GetByIDForUpdate(ctx, tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		max, err := r.Cells.MaxNumber(ctx, tableID)
		if err != nil {
			return err
		}
		now := time.Now()
		cell = &entity.Cell{
			ID:         uuid.New().String(),
			TableID:    tableID,
			CellNumber: max + 1,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return r.Cells.Create(ctx, cell)
	})
	if err != nil {
		return nil, err
	}
	out := toCellResponse(cell)
	return &out, nil
}

// SetStatus aplica una transición de estado a la celda. Transiciones válidas:
// EMPTY→FILLED→HARVESTED y cualquiera→MAINTENANCE→EMPTY.
func (uc *UseCase) SetStatus(ctx context.Context, cellID, status string, quantity *int64) (*dto.CellResponse, error) {
	if !entity.ValidCellStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if quantity != nil && *quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var cell *entity.Cell
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		cell, err = r.Cells.GetByID(ctx, cellID)
		if err != nil {
			return err
		}
		if cell == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(cell.Status, status) {
			return domain.ErrInvalidTransition
		}
		cell.Status = status
		switch status {
		case entity.CellStatusEmpty:
			cell.Quantity = 0
		default:
			if quantity != nil {
				cell.Quantity = *quantity
			}
		}
		cell.UpdatedAt = time.Now()
		return r.Cells.UpdateStatus(ctx, cell)
	})
	if err != nil {
		return nil, err
	}
	out := toCellResponse(cell)
	return &out, nil
}

// List devuelve las celdas de la mesa por cell_number ascendente.
func (uc *UseCase) List(ctx context.Context, tableID string) (*dto.CellListResponse, error) {
	table, err := uc.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNotFound
	}
	cells, err := uc.cellRepo.ListByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	return toCellListResponse(cells), nil
}

func toCellResponse(c *entity.Cell) dto.CellResponse {
	return dto.CellResponse{
		ID:         c.ID,
		TableID:    c.TableID,
		CellNumber: c.CellNumber,
		Status:     c.Status,
		Quantity:   c.Quantity,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCellListResponse(cells []*entity.Cell) *dto.CellListResponse {
	out := make([]dto.CellResponse, 0, len(cells))
	for _, c := range cells {
		out = append(out, toCellResponse(c))
	}
	return &dto.CellListResponse{Cells: out}
}
