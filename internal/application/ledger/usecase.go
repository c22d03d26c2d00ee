package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

// UseCase es el libro de movimientos: única fuente de verdad del disponible
// por artículo. Los appends son transaccionales y se serializan por artículo
// con bloqueo de fila (SELECT FOR UPDATE) sobre inventory_items.
type UseCase struct {
	txRunner ports.TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	cache    ports.QuantityCache
	notifier ports.Notifier
}

// NewUseCase construye el caso de uso. cache y notifier pueden ser Nop.
func NewUseCase(
	txRunner ports.TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	cache ports.QuantityCache,
	notifier ports.Notifier,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		cache:    cache,
		notifier: notifier,
	}
}

// AppendInput entrada para registrar un movimiento en el libro.
type AppendInput struct {
	ItemID    string
	Direction string // IN | OUT
	Quantity  int64
	Reference string // clave de idempotencia; única por artículo
	Note      string
}

// Append registra un movimiento de forma durable y devuelve su ID.
// Reglas:
//   - Quantity <= 0 -> ErrInvalidQuantity.
//   - OUT que dejaría el disponible negativo -> ErrInsufficientStock.
//   - Reference repetida con misma dirección y cantidad -> replay idempotente:
//     devuelve el ID del movimiento existente sin escribir nada.
//   - Reference repetida con datos distintos -> ErrDuplicateReference.
func (uc *UseCase) Append(ctx context.Context, in AppendInput) (string, error) {
	if in.Quantity <= 0 {
		return "", domain.ErrInvalidQuantity
	}
	if !entity.ValidDirection(in.Direction) {
		return "", domain.ErrInvalidInput
	}
	if in.ItemID == "" || in.Reference == "" {
		return "", domain.ErrInvalidInput
	}

	var movementID string
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		id, err := AppendInTx(ctx, r, in)
		if err != nil {
			return err
		}
		movementID = id
		return nil
	})
	if err != nil {
		return "", err
	}

	uc.afterAppend(ctx, in)
	return movementID, nil
}

// AppendInTx ejecuta el append usando los repositorios del caller (misma
// transacción). Lo usa el coordinador de traslados para emitir la pareja
// OUT/IN dentro de su propia unidad atómica. Las validaciones de forma deben
// haberse hecho antes.
func AppendInTx(ctx context.Context, r ports.Repos, in AppendInput) (string, error) {
	// Bloquea la fila del artículo: dos appends concurrentes del mismo artículo
	// jamás validan contra el mismo disponible previo.
	item, err := r.Items.GetByIDForUpdate(ctx, in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil || item.Archived() {
		return "", domain.ErrNotFound
	}

	// Replay idempotente bajo el mismo lock.
	existing, err := r.Movements.GetByReference(ctx, in.ItemID, in.Reference)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if existing.Direction == in.Direction && existing.Quantity == in.Quantity {
			return existing.ID, nil
		}
		return "", domain.ErrDuplicateReference
	}

	if in.Direction == entity.DirectionOUT {
		onHand, err := r.Movements.QuantityOnHand(ctx, in.ItemID)
		if err != nil {
			return "", err
		}
		if onHand < in.Quantity {
			return "", domain.ErrInsufficientStock
		}
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    in.ItemID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Note:      in.Note,
		CreatedAt: time.Now(),
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		// Carrera perdida contra otro append con la misma referencia: el
		// constraint único (item_id, reference) decide. Releer y aplicar la
		// misma regla de replay.
		if errors.Is(err, domain.ErrDuplicateReference) {
			winner, gerr := r.Movements.GetByReference(ctx, in.ItemID, in.Reference)
			if gerr == nil && winner != nil && winner.Direction == in.Direction && winner.Quantity == in.Quantity {
				return winner.ID, nil
			}
			return "", domain.ErrDuplicateReference
		}
		return "", err
	}
	return mov.ID, nil
}

// afterAppend invalida la caché y emite el evento de stock bajo si aplica.
// Corre fuera de la transacción: nada de esto condiciona la corrección.
func (uc *UseCase) afterAppend(ctx context.Context, in AppendInput) {
	uc.cache.Invalidate(ctx, in.ItemID)
	if in.Direction != entity.DirectionOUT {
		return
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil || item == nil || item.ReorderPoint <= 0 {
		return
	}
	onHand, err := uc.movRepo.QuantityOnHand(ctx, in.ItemID)
	if err != nil {
		return
	}
	if onHand < item.ReorderPoint {
		uc.notifier.LowStock(ctx, ports.LowStockEvent{
			ItemID:         item.ID,
			Name:           item.Name,
			QuantityOnHand: onHand,
			ReorderPoint:   item.ReorderPoint,
			OccurredAt:     time.Now(),
		})
	}
}

// QuantityOnHand devuelve el disponible del artículo: sum(IN) - sum(OUT).
// Sirve desde caché si hay hit; el valor cacheado siempre proviene de un
// plegado previo del libro.
func (uc *UseCase) QuantityOnHand(ctx context.Context, itemID string) (int64, error) {
	if qty, ok := uc.cache.Get(ctx, itemID); ok {
		return qty, nil
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}
	qty, err := uc.movRepo.QuantityOnHand(ctx, itemID)
	if err != nil {
		return 0, err
	}
	uc.cache.Set(ctx, itemID, qty)
	return qty, nil
}

// History devuelve el historial cronológico del artículo, reanudable con
// since/offset.
func (uc *UseCase) History(ctx context.Context, itemID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByItem(ctx, itemID, since, limit, offset)
}

// InvalidateQuantity fuerza la expulsión de la caché del artículo. Lo usan
// operaciones que escriben el libro fuera de Append (traslados).
func (uc *UseCase) InvalidateQuantity(ctx context.Context, itemID string) {
	uc.cache.Invalidate(ctx, itemID)
}
