package item

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/ledger"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase registro de artículos de inventario. Las lecturas decoran cada
// artículo con el disponible vivo del libro; las altas/bajas de existencias
// pasan siempre por el libro (RecordAdjustment), jamás por un UPDATE directo.
type UseCase struct {
	repo   repository.ItemRepository
	ledger *ledger.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ItemRepository, ledgerUC *ledger.UseCase) *UseCase {
	return &UseCase{repo: repo, ledger: ledgerUC}
}

// Register da de alta un artículo y devuelve su representación.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidClassification(in.Classification) {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	cost, err := parseAmount(in.Cost)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	price, err := parseAmount(in.Price)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Classification: in.Classification,
		Unit:           in.Unit,
		Cost:           cost,
		Price:          price,
		Location:       in.Location,
		ReorderPoint:   in.ReorderPoint,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item, 0), nil
}

// Get devuelve el artículo decorado con su disponible actual.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	qty, err := uc.ledger.QuantityOnHand(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, qty), nil
}

// List lista artículos, opcionalmente filtrados por clasificación, decorados
// con su disponible.
func (uc *UseCase) List(ctx context.Context, classification string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	if classification != "" && !entity.ValidClassification(classification) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	items, err := uc.repo.List(ctx, classification, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		qty, err := uc.ledger.QuantityOnHand(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toItemResponse(it, qty))
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageOf(page),
	}, nil
}

// UpdateMetadata actualiza nombre/precios/ubicación. El disponible derivado no
// es editable por este camino ni por ningún otro.
func (uc *UseCase) UpdateMetadata(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Cost != nil {
		cost, err := parseAmount(*in.Cost)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		item.Cost = cost
	}
	if in.Price != nil {
		price, err := parseAmount(*in.Price)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		item.Price = price
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.UpdateMetadata(ctx, item); err != nil {
		return nil, err
	}
	qty, err := uc.ledger.QuantityOnHand(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, qty), nil
}

// RecordAdjustment registra un ajuste manual en el libro. El signo de Delta
// decide la dirección; la referencia hace el ajuste reintentable.
func (uc *UseCase) RecordAdjustment(ctx context.Context, id string, in dto.AdjustmentRequest) (string, error) {
	if in.Delta == 0 {
		return "", domain.ErrInvalidQuantity
	}
	direction := entity.DirectionIN
	qty := in.Delta
	if in.Delta < 0 {
		direction = entity.DirectionOUT
		qty = -in.Delta
	}
	return uc.ledger.Append(ctx, ledger.AppendInput{
		ItemID:    id,
		Direction: direction,
		Quantity:  qty,
		Reference: in.Reference,
		Note:      in.Note,
	})
}

// Archive archiva el artículo (soft-delete). Los movimientos existentes lo
// mantienen con vida; solo deja de aceptar appends nuevos.
func (uc *UseCase) Archive(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Archive(ctx, id)
}

// Stats agrega totales por clasificación y cuenta de artículos bajo reorden.
// Todo calculado en lectura: no hay agregados almacenados que puedan quedar
// obsoletos.
func (uc *UseCase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.repo.ListBelowReorder(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}
	byClass := make([]dto.ClassificationStatDTO, 0, len(stats))
	for _, s := range stats {
		byClass = append(byClass, dto.ClassificationStatDTO{
			Classification: s.Classification,
			Items:          s.Items,
			TotalQuantity:  s.TotalQuantity,
		})
	}
	return &dto.StatsResponse{ByClassification: byClass, BelowReorder: len(low)}, nil
}

// LowStock lista los artículos por debajo de su punto de reorden.
func (uc *UseCase) LowStock(ctx context.Context, page dto.PageRequest) ([]dto.LowStockItemDTO, error) {
	page.DefaultPage()
	low, err := uc.repo.ListBelowReorder(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(low))
	for _, l := range low {
		out = append(out, dto.LowStockItemDTO{
			ItemID:         l.ItemID,
			Name:           l.Name,
			Classification: l.Classification,
			QuantityOnHand: l.QuantityOnHand,
			ReorderPoint:   l.ReorderPoint,
		})
	}
	return out, nil
}

// History expone el historial del libro para un artículo.
func (uc *UseCase) History(ctx context.Context, id string, since *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movs, err := uc.ledger.History(ctx, id, since, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			Direction: m.Direction,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Movements: out,
		Page:      dto.PageOf(page),
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func toItemResponse(i *entity.Item, qty int64) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:             i.ID,
		Name:           i.Name,
		Classification: i.Classification,
		Unit:           i.Unit,
		Cost:           i.Cost.String(),
		Price:          i.Price.String(),
		Location:       i.Location,
		ReorderPoint:   i.ReorderPoint,
		QuantityOnHand: qty,
		ArchivedAt:     i.ArchivedAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
