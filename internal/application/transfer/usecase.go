package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/ledger"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

// UseCase coordina traslados de producción entre mesas. Todo el efecto — el
// registro Transfer, el movimiento de cantidades entre celdas y la pareja
// OUT/IN del libro cuando las mesas están respaldadas por artículos — se
// aplica en una sola transacción: o se ve todo, o no se ve nada.
type UseCase struct {
	txRunner     ports.TxRunner
	tableRepo    repository.TableRepository
	transferRepo repository.TransferRepository
	ledger       *ledger.UseCase
	notifier     ports.Notifier
}

// NewUseCase construye el coordinador.
func NewUseCase(
	txRunner ports.TxRunner,
	tableRepo repository.TableRepository,
	transferRepo repository.TransferRepository,
	ledgerUC *ledger.UseCase,
	notifier ports.Notifier,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		tableRepo:    tableRepo,
		transferRepo: transferRepo,
		ledger:       ledgerUC,
		notifier:     notifier,
	}
}

// Input entrada para un traslado.
type Input struct {
	SourceID  string
	DestID    string
	Quantity  int64
	Reference string // clave de idempotencia (opcional)
	Notes     string
	UserID    string
}

// Transfer ejecuta el traslado y devuelve el ID del registro Transfer.
// Reglas (en orden): mesas existentes, misma clasificación, cantidad > 0,
// stock suficiente en las celdas de origen. Con Reference repetida y mismos
// datos es un replay idempotente.
func (uc *UseCase) Transfer(ctx context.Context, in Input) (*dto.TransferResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.SourceID == "" || in.DestID == "" || in.SourceID == in.DestID {
		return nil, domain.ErrInvalidInput
	}

	// Prevalidación fuera de la transacción; se repite el load con lock dentro.
	source, err := uc.tableRepo.GetByID(ctx, in.SourceID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.tableRepo.GetByID(ctx, in.DestID)
	if err != nil {
		return nil, err
	}
	if source == nil || dest == nil {
		return nil, domain.ErrNotFound
	}
	if source.Classification != dest.Classification {
		return nil, domain.ErrClassificationMismatch
	}

	var result *entity.Transfer
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		result, err = uc.transferInTx(ctx, r, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.ledger.InvalidateQuantity(ctx, source.ItemID)
	uc.ledger.InvalidateQuantity(ctx, dest.ItemID)
	uc.notifier.TransferCompleted(ctx, ports.TransferEvent{
		TransferID: result.ID,
		SourceID:   result.SourceID,
		DestID:     result.DestID,
		Quantity:   result.Quantity,
		OccurredAt: result.CreatedAt,
	})
	return toTransferResponse(result), nil
}

func (uc *UseCase) transferInTx(ctx context.Context, r ports.Repos, in Input) (*entity.Transfer, error) {
	// Replay idempotente: mismo reference + mismos datos devuelve el traslado
	// ya confirmado sin tocar nada.
	if in.Reference != "" {
		existing, err := r.Transfers.GetByReference(ctx, in.Reference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.SourceID == in.SourceID && existing.DestID == in.DestID && existing.Quantity == in.Quantity {
				return existing, nil
			}
			return nil, domain.ErrDuplicateReference
		}
	}

	// Bloquear ambas mesas en orden estable de ID para evitar deadlocks entre
	// traslados cruzados A→B y B→A.
	first, second := in.SourceID, in.DestID
	if second < first {
		first, second = second, first
	}
	locked := map[string]*entity.Table{}
	for _, id := range []string{first, second} {
		t, err := r.Tables.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, domain.ErrNotFound
		}
		locked[id] = t
	}
	source, dest := locked[in.SourceID], locked[in.DestID]
	if source.Classification != dest.Classification {
		return nil, domain.ErrClassificationMismatch
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:        uuid.New().String(),
		SourceID:  in.SourceID,
		DestID:    in.DestID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedAt: now,
		CreatedBy: in.UserID,
	}

	if err := drainSource(ctx, r, in.SourceID, in.Quantity, now); err != nil {
		return nil, err
	}
	if err := fillDestination(ctx, r, in.DestID, in.Quantity, now); err != nil {
		return nil, err
	}
	if err := r.Transfers.Create(ctx, transfer); err != nil {
		return nil, err
	}

	// Pareja OUT/IN en el libro cuando ambas mesas están respaldadas por
	// artículos. Referencias derivadas del ID del traslado: reintentables.
	if source.ItemID != "" && dest.ItemID != "" {
		_, err := ledger.AppendInTx(ctx, r, ledger.AppendInput{
			ItemID:    source.ItemID,
			Direction: entity.DirectionOUT,
			Quantity:  in.Quantity,
			Reference: "TRF-" + transfer.ID + "-OUT",
			Note:      "traslado a mesa " + dest.Name,
		})
		if err != nil {
			return nil, err
		}
		_, err = ledger.AppendInTx(ctx, r, ledger.AppendInput{
			ItemID:    dest.ItemID,
			Direction: entity.DirectionIN,
			Quantity:  in.Quantity,
			Reference: "TRF-" + transfer.ID + "-IN",
			Note:      "traslado desde mesa " + source.Name,
		})
		if err != nil {
			return nil, err
		}
	}
	return transfer, nil
}

// drainSource resta quantity de las celdas FILLED del origen, de menor a
// mayor cell_number. Una celda que queda en cero pasa a EMPTY. Si las celdas
// no cubren la cantidad, ErrInsufficientStock y rollback de todo.
func drainSource(ctx context.Context, r ports.Repos, tableID string, quantity int64, now time.Time) error {
	cells, err := r.Cells.ListByTable(ctx, tableID)
	if err != nil {
		return err
	}
	remaining := quantity
	for _, cell := range cells {
		if remaining == 0 {
			break
		}
		if cell.Status != entity.CellStatusFilled || cell.Quantity <= 0 {
			continue
		}
		take := cell.Quantity
		if take > remaining {
			take = remaining
		}
		cell.Quantity -= take
		remaining -= take
		if cell.Quantity == 0 {
			// FILLED → MAINTENANCE → EMPTY no aplica aquí: el vaciado por
			// traslado deja la celda directamente disponible.
			cell.Status = entity.CellStatusEmpty
		}
		cell.UpdatedAt = now
		if err := r.Cells.UpdateStatus(ctx, cell); err != nil {
			return err
		}
	}
	if remaining > 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// fillDestination acomoda quantity en el destino: primera celda EMPTY pasa a
// FILLED con la cantidad; si no hay EMPTY se suma a la última FILLED; si la
// mesa no tiene celdas se crea la número 1 (la numeración sigue contigua).
func fillDestination(ctx context.Context, r ports.Repos, tableID string, quantity int64, now time.Time) error {
	cells, err := r.Cells.ListByTable(ctx, tableID)
	if err != nil {
		return err
	}
	var lastFilled *entity.Cell
	for _, cell := range cells {
		if cell.Status == entity.CellStatusEmpty {
			cell.Status = entity.CellStatusFilled
			cell.Quantity = quantity
			cell.UpdatedAt = now
			return r.Cells.UpdateStatus(ctx, cell)
		}
		if cell.Status == entity.CellStatusFilled {
			lastFilled = cell
		}
	}
	if lastFilled != nil {
		lastFilled.Quantity += quantity
		lastFilled.UpdatedAt = now
		return r.Cells.UpdateStatus(ctx, lastFilled)
	}
	max, err := r.Cells.MaxNumber(ctx, tableID)
	if err != nil {
		return err
	}
	return r.Cells.Create(ctx, &entity.Cell{
		ID:         uuid.New().String(),
		TableID:    tableID,
		CellNumber: max + 1,
		Status:     entity.CellStatusFilled,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// Get devuelve un traslado por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TransferResponse, error) {
	out, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(out), nil
}

// ListByTable lista traslados donde la mesa participa como origen o destino.
func (uc *UseCase) ListByTable(ctx context.Context, tableID string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	transfers, err := uc.transferRepo.ListByTable(ctx, tableID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Transfers: out,
		Page:      dto.PageOf(page),
	}, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:                 t.ID,
		SourceTableID:      t.SourceID,
		DestinationTableID: t.DestID,
		Quantity:           t.Quantity,
		Reference:          t.Reference,
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
	}
}
