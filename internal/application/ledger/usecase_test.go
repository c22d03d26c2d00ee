package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ostricola-api/internal/application/apptest"
	"github.com/jhoicas/Ostricola-api/internal/application/ledger"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

func newLedger(s *apptest.Store) *ledger.UseCase {
	repos := s.Repos()
	return ledger.NewUseCase(
		apptest.NewTxRunner(s), repos.Items, repos.Movements,
		ports.NopQuantityCache{}, ports.NopNotifier{},
	)
}

func seedItem(s *apptest.Store) string {
	id := uuid.New().String()
	now := time.Now()
	s.Items[id] = entity.Item{
		ID:             id,
		Name:           "Ostra juvenil",
		Classification: entity.ClassificationTriploid,
		Unit:           "unidad",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return id
}

func TestAppend_EntradaYSalidas(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newLedger(store)
	itemID := seedItem(store)

	// Entrada inicial de 100.
	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 100, Reference: "LOTE-001",
	})
	require.NoError(t, err)

	onHand, err := uc.QuantityOnHand(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), onHand)

	// Salida de 30 deja 70.
	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionOUT, Quantity: 30, Reference: "VENTA-001",
	})
	require.NoError(t, err)

	onHand, err = uc.QuantityOnHand(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), onHand)

	// Una salida mayor que el disponible se rechaza sin efectos.
	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionOUT, Quantity: 9999, Reference: "VENTA-002",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	onHand, err = uc.QuantityOnHand(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), onHand, "un rechazo no debe tocar el libro")
	assert.Len(t, store.Movements, 2)
}

func TestAppend_ReplayIdempotente(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newLedger(store)
	itemID := seedItem(store)

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 50, Reference: "LOTE-001",
	})
	require.NoError(t, err)

	firstID, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionOUT, Quantity: 5, Reference: "MOV-123",
	})
	require.NoError(t, err)

	// El reintento con la misma referencia y los mismos datos devuelve el
	// mismo movimiento sin escribir nada.
	replayID, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionOUT, Quantity: 5, Reference: "MOV-123",
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, replayID)

	onHand, err := uc.QuantityOnHand(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(45), onHand, "la salida debe aplicarse una sola vez")
	assert.Len(t, store.Movements, 2)
}

func TestAppend_ReferenciaConDatosDistintos(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newLedger(store)
	itemID := seedItem(store)

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 10, Reference: "REF-1",
	})
	require.NoError(t, err)

	// Misma referencia pero otra cantidad: no es un replay, es un conflicto.
	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 99, Reference: "REF-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
	assert.Len(t, store.Movements, 1)
}

func TestAppend_Validaciones(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newLedger(store)
	itemID := seedItem(store)

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 0, Reference: "R",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: -4, Reference: "R",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: "SIDEWAYS", Quantity: 1, Reference: "R",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 1, Reference: "",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.Movements)
}

func TestAppend_ArticuloInexistenteOArchivado(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newLedger(store)

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemID: uuid.New().String(), Direction: entity.DirectionIN, Quantity: 1, Reference: "R",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	itemID := seedItem(store)
	it := store.Items[itemID]
	now := time.Now()
	it.ArchivedAt = &now
	store.Items[itemID] = it

	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemID: itemID, Direction: entity.DirectionIN, Quantity: 1, Reference: "R",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un artículo archivado no acepta movimientos")
}

func TestHistory_OrdenYFiltroSince(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newLedger(store)
	itemID := seedItem(store)

	for i, ref := range []string{"A", "B", "C"} {
		_, err := uc.Append(ctx, ledger.AppendInput{
			ItemID: itemID, Direction: entity.DirectionIN, Quantity: int64(i + 1), Reference: ref,
		})
		require.NoError(t, err)
	}

	movs, err := uc.History(ctx, itemID, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, "A", movs[0].Reference, "el historial es cronológico ascendente")
	assert.Equal(t, "C", movs[2].Reference)

	// since posterior a todo el historial lo deja vacío.
	future := time.Now().Add(time.Hour)
	movs, err = uc.History(ctx, itemID, &future, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}
