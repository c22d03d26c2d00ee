package item_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ostricola-api/internal/application/apptest"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/item"
	"github.com/jhoicas/Ostricola-api/internal/application/ledger"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

func newItemUC(s *apptest.Store) *item.UseCase {
	repos := s.Repos()
	ledgerUC := ledger.NewUseCase(apptest.NewTxRunner(s), repos.Items, repos.Movements, ports.NopQuantityCache{}, ports.NopNotifier{})
	return item.NewUseCase(repos.Items, ledgerUC)
}

func registerItem(t *testing.T, uc *item.UseCase, classification string, reorder int64) *dto.ItemResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterItemRequest{
		Name:           "Ostra " + classification,
		Classification: classification,
		Unit:           "unidad",
		Cost:           "0.35",
		Price:          "1.20",
		Location:       "Batea 3",
		ReorderPoint:   reorder,
	})
	require.NoError(t, err)
	return out
}

func TestRegister_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newItemUC(apptest.NewStore())

	_, err := uc.Register(ctx, dto.RegisterItemRequest{Name: "", Classification: entity.ClassificationTriploid, Unit: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterItemRequest{Name: "X", Classification: "PENTAPLOID", Unit: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterItemRequest{Name: "X", Classification: entity.ClassificationTriploid, Unit: "u", ReorderPoint: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterItemRequest{Name: "X", Classification: entity.ClassificationTriploid, Unit: "u", Cost: "no-es-numero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_YGetConDisponible(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newItemUC(store)

	created := registerItem(t, uc, entity.ClassificationTriploid, 0)
	assert.Equal(t, "0.35", created.Cost)
	assert.Equal(t, int64(0), created.QuantityOnHand)

	_, err := uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: 250, Reference: "SIEMBRA-1"})
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.QuantityOnHand, "el disponible sale del libro")
}

func TestRecordAdjustment_SignoDecideDireccion(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newItemUC(store)
	created := registerItem(t, uc, entity.ClassificationDiploid, 0)

	_, err := uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: 100, Reference: "AJ-1"})
	require.NoError(t, err)
	_, err = uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: -40, Reference: "AJ-2"})
	require.NoError(t, err)

	require.Len(t, store.Movements, 2)
	assert.Equal(t, entity.DirectionIN, store.Movements[0].Direction)
	assert.Equal(t, entity.DirectionOUT, store.Movements[1].Direction)
	assert.Equal(t, int64(40), store.Movements[1].Quantity)

	_, err = uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: 0, Reference: "AJ-3"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: -5000, Reference: "AJ-4"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdateMetadata_NoTocaElDisponible(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newItemUC(store)
	created := registerItem(t, uc, entity.ClassificationTriploid, 0)

	_, err := uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: 80, Reference: "AJ-1"})
	require.NoError(t, err)

	name := "Ostra renombrada"
	price := "2.50"
	updated, err := uc.UpdateMetadata(ctx, created.ID, dto.UpdateItemRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Ostra renombrada", updated.Name)
	assert.Equal(t, "2.5", updated.Price)
	assert.Equal(t, int64(80), updated.QuantityOnHand, "los metadatos no alteran el libro")

	empty := ""
	_, err = uc.UpdateMetadata(ctx, created.ID, dto.UpdateItemRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArchive_RechazaMovimientosPosteriores(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newItemUC(store)
	created := registerItem(t, uc, entity.ClassificationTriploid, 0)

	require.NoError(t, uc.Archive(ctx, created.ID))

	_, err := uc.RecordAdjustment(ctx, created.ID, dto.AdjustmentRequest{Delta: 10, Reference: "AJ-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Archive(ctx, uuid.New().String()), domain.ErrNotFound)
}

func TestStatsYLowStock(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newItemUC(store)

	tri := registerItem(t, uc, entity.ClassificationTriploid, 50)
	dip := registerItem(t, uc, entity.ClassificationDiploid, 0)

	_, err := uc.RecordAdjustment(ctx, tri.ID, dto.AdjustmentRequest{Delta: 20, Reference: "AJ-1"})
	require.NoError(t, err)
	_, err = uc.RecordAdjustment(ctx, dip.ID, dto.AdjustmentRequest{Delta: 300, Reference: "AJ-2"})
	require.NoError(t, err)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.ByClassification, 2)
	assert.Equal(t, 1, stats.BelowReorder, "el triploide está bajo su punto de reorden")

	low, err := uc.LowStock(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, tri.ID, low[0].ItemID)
	assert.Equal(t, int64(20), low[0].QuantityOnHand)
	assert.Equal(t, int64(50), low[0].ReorderPoint)
}

func TestList_FiltraPorClasificacion(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newItemUC(store)

	registerItem(t, uc, entity.ClassificationTriploid, 0)
	registerItem(t, uc, entity.ClassificationDiploid, 0)

	all, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	tri, err := uc.List(ctx, entity.ClassificationTriploid, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, tri.Items, 1)
	assert.Equal(t, entity.ClassificationTriploid, tri.Items[0].Classification)

	_, err = uc.List(ctx, "NONSENSE", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
