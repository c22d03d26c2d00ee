package reorg_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ostricola-api/internal/application/apptest"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/application/reorg"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

func addTable(s *apptest.Store, name, classification string, col, row int) string {
	id := uuid.New().String()
	now := time.Now()
	s.Tables[id] = entity.Table{
		ID: id, Name: name, Classification: classification,
		ColumnIndex: col, RowIndex: row, CreatedAt: now, UpdatedAt: now,
	}
	return id
}

func TestRebuildAll_ReconstruyeTodasLasMesas(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := reorg.NewUseCase(apptest.NewTxRunner(store), reorg.Options{CellsPerTable: 10, FillRatio: 0.60}, ports.NopNotifier{})

	t1 := addTable(store, "T1", entity.ClassificationTriploid, 0, 0)
	t2 := addTable(store, "T2", entity.ClassificationDiploid, 0, 1)

	// Celdas previas con numeración rota que el rebuild debe reemplazar.
	now := time.Now()
	staleID := uuid.New().String()
	store.Cells[staleID] = entity.Cell{
		ID: staleID, TableID: t1, CellNumber: 7,
		Status: entity.CellStatusHarvested, CreatedAt: now, UpdatedAt: now,
	}

	out, err := uc.RebuildAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, out.Tables, 2)
	assert.Equal(t, 20, out.Total)

	for _, tableID := range []string{t1, t2} {
		cells, err := store.Repos().Cells.ListByTable(ctx, tableID)
		require.NoError(t, err)
		require.Len(t, cells, 10)
		filled := 0
		for i, c := range cells {
			assert.Equal(t, i+1, c.CellNumber)
			if c.Status == entity.CellStatusFilled {
				filled++
			}
		}
		assert.Equal(t, 6, filled, "el 60 por ciento de 10 celdas nace FILLED")
	}
}

func TestRebuildAll_OrdenPorClasificacionYPlanta(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := reorg.NewUseCase(apptest.NewTxRunner(store), reorg.Options{CellsPerTable: 2, FillRatio: 0}, ports.NopNotifier{})

	addTable(store, "D-C0R0", entity.ClassificationDiploid, 0, 0)
	addTable(store, "T-C1R0", entity.ClassificationTriploid, 1, 0)
	addTable(store, "T-C0R2", entity.ClassificationTriploid, 0, 2)
	addTable(store, "D-C2R1", entity.ClassificationDiploid, 2, 1)

	out, err := uc.RebuildAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, out.Tables, 4)

	names := make([]string, len(out.Tables))
	for i, r := range out.Tables {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"T-C0R2", "T-C1R0", "D-C0R0", "D-C2R1"}, names,
		"triploides primero, cada grupo en orden (column_index, row_index)")
}

func TestRebuildAll_OverridesPorLlamada(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := reorg.NewUseCase(apptest.NewTxRunner(store), reorg.Options{CellsPerTable: 20, FillRatio: 0.60}, ports.NopNotifier{})
	tableID := addTable(store, "T1", entity.ClassificationTriploid, 0, 0)

	out, err := uc.RebuildAll(ctx, &reorg.Options{CellsPerTable: 4, FillRatio: 0.25})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)

	cells, err := store.Repos().Cells.ListByTable(ctx, tableID)
	require.NoError(t, err)
	require.Len(t, cells, 4)
	assert.Equal(t, entity.CellStatusFilled, cells[0].Status)
	assert.Equal(t, entity.CellStatusEmpty, cells[1].Status)
}

func TestRebuildAll_TodoONada(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	tx := apptest.NewTxRunner(store)
	uc := reorg.NewUseCase(tx, reorg.Options{CellsPerTable: 5, FillRatio: 0.60}, ports.NopNotifier{})

	addTable(store, "T1", entity.ClassificationTriploid, 0, 0)
	addTable(store, "T2", entity.ClassificationTriploid, 0, 1)

	tx.FailCommit = domain.ErrPartialCommit
	_, err := uc.RebuildAll(ctx, nil)
	require.Error(t, err)
	assert.Empty(t, store.Cells, "un fallo al confirmar no deja ninguna cuadrícula escrita")
}

func TestRebuildAll_SinMesas(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := reorg.NewUseCase(apptest.NewTxRunner(store), reorg.Options{CellsPerTable: 5, FillRatio: 0.60}, ports.NopNotifier{})

	out, err := uc.RebuildAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, out.Tables)
	assert.Zero(t, out.Total)
}
