package grid_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ostricola-api/internal/application/apptest"
	"github.com/jhoicas/Ostricola-api/internal/application/grid"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	domaingrid "github.com/jhoicas/Ostricola-api/internal/domain/grid"
)

func newGrid(s *apptest.Store) *grid.UseCase {
	repos := s.Repos()
	return grid.NewUseCase(apptest.NewTxRunner(s), repos.Tables, repos.Cells)
}

func seedTable(s *apptest.Store) string {
	id := uuid.New().String()
	now := time.Now()
	s.Tables[id] = entity.Table{
		ID: id, Name: "M1", Classification: entity.ClassificationTriploid,
		CreatedAt: now, UpdatedAt: now,
	}
	return id
}

func TestRebuild_NumeracionContiguaYPolitica(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)
	tableID := seedTable(store)

	out, err := uc.Rebuild(ctx, tableID, 10, domaingrid.RatioPolicy(0.60))
	require.NoError(t, err)
	require.Len(t, out.Cells, 10)

	for i, cell := range out.Cells {
		assert.Equal(t, i+1, cell.CellNumber, "numeración 1..N sin huecos")
		if i < 6 {
			assert.Equal(t, entity.CellStatusFilled, cell.Status, "celda %d", i+1)
		} else {
			assert.Equal(t, entity.CellStatusEmpty, cell.Status, "celda %d", i+1)
		}
	}
}

func TestRebuild_ReemplazaLasCeldasAnteriores(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)
	tableID := seedTable(store)

	_, err := uc.Rebuild(ctx, tableID, 8, domaingrid.AllEmptyPolicy())
	require.NoError(t, err)

	out, err := uc.Rebuild(ctx, tableID, 3, domaingrid.AllEmptyPolicy())
	require.NoError(t, err)
	require.Len(t, out.Cells, 3)

	listed, err := uc.List(ctx, tableID)
	require.NoError(t, err)
	assert.Len(t, listed.Cells, 3, "las celdas del rebuild anterior no sobreviven")
}

func TestRebuild_Errores(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)
	tableID := seedTable(store)

	_, err := uc.Rebuild(ctx, tableID, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCellCount)

	_, err = uc.Rebuild(ctx, tableID, -3, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCellCount)

	_, err = uc.Rebuild(ctx, uuid.New().String(), 5, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendCell_SiguienteNumero(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)
	tableID := seedTable(store)

	// Sin celdas, la primera es la número 1.
	first, err := uc.AppendCell(ctx, tableID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.CellNumber)
	assert.Equal(t, entity.CellStatusEmpty, first.Status, "el estado por defecto es EMPTY")

	_, err = uc.Rebuild(ctx, tableID, 5, domaingrid.AllEmptyPolicy())
	require.NoError(t, err)

	appended, err := uc.AppendCell(ctx, tableID, entity.CellStatusFilled)
	require.NoError(t, err)
	assert.Equal(t, 6, appended.CellNumber, "append usa max(cell_number)+1")

	listed, err := uc.List(ctx, tableID)
	require.NoError(t, err)
	require.Len(t, listed.Cells, 6)
	for i, cell := range listed.Cells {
		assert.Equal(t, i+1, cell.CellNumber, "la contigüidad sobrevive al append")
	}
}

func TestAppendCell_EstadoInvalido(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)
	tableID := seedTable(store)

	_, err := uc.AppendCell(ctx, tableID, "BROKEN")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStatus_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)
	tableID := seedTable(store)

	cell, err := uc.AppendCell(ctx, tableID, "")
	require.NoError(t, err)

	qty := int64(120)
	filled, err := uc.SetStatus(ctx, cell.ID, entity.CellStatusFilled, &qty)
	require.NoError(t, err)
	assert.Equal(t, int64(120), filled.Quantity)

	harvested, err := uc.SetStatus(ctx, cell.ID, entity.CellStatusHarvested, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CellStatusHarvested, harvested.Status)
	assert.Equal(t, int64(120), harvested.Quantity, "la cantidad se conserva si no se indica otra")

	// HARVESTED no vuelve a FILLED; el camino de salida es MAINTENANCE.
	_, err = uc.SetStatus(ctx, cell.ID, entity.CellStatusFilled, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.SetStatus(ctx, cell.ID, entity.CellStatusMaintenance, nil)
	require.NoError(t, err)

	emptied, err := uc.SetStatus(ctx, cell.ID, entity.CellStatusEmpty, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), emptied.Quantity, "volver a EMPTY pone la cantidad a cero")
}

func TestSetStatus_Errores(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newGrid(store)

	_, err := uc.SetStatus(ctx, uuid.New().String(), entity.CellStatusFilled, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tableID := seedTable(store)
	cell, err := uc.AppendCell(ctx, tableID, "")
	require.NoError(t, err)

	negative := int64(-1)
	_, err = uc.SetStatus(ctx, cell.ID, entity.CellStatusFilled, &negative)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.SetStatus(ctx, cell.ID, "BROKEN", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
