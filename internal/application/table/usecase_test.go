package table_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ostricola-api/internal/application/apptest"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/table"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

func newTableUC(s *apptest.Store) *table.UseCase {
	repos := s.Repos()
	return table.NewUseCase(apptest.NewTxRunner(s), repos.Tables, repos.Items)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newTableUC(store)

	_, err := uc.Create(ctx, dto.CreateTableRequest{Name: "", Classification: entity.ClassificationTriploid})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateTableRequest{Name: "M1", Classification: "OCTOPLOID"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateTableRequest{Name: "M1", Classification: entity.ClassificationTriploid, RowIndex: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(ctx, dto.CreateTableRequest{
		Name: "M1", Classification: entity.ClassificationTriploid, RowIndex: 2, ColumnIndex: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "M1", out.Name)
	assert.NotEmpty(t, out.ID)
}

func TestCreate_ArticuloDebeCoincidirEnClasificacion(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newTableUC(store)

	itemID := uuid.New().String()
	now := time.Now()
	store.Items[itemID] = entity.Item{
		ID: itemID, Name: "Lote diploide", Classification: entity.ClassificationDiploid,
		Unit: "unidad", CreatedAt: now, UpdatedAt: now,
	}

	_, err := uc.Create(ctx, dto.CreateTableRequest{
		Name: "M1", Classification: entity.ClassificationTriploid, ItemID: itemID,
	})
	assert.ErrorIs(t, err, domain.ErrClassificationMismatch)

	_, err = uc.Create(ctx, dto.CreateTableRequest{
		Name: "M1", Classification: entity.ClassificationTriploid, ItemID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Create(ctx, dto.CreateTableRequest{
		Name: "M2", Classification: entity.ClassificationDiploid, ItemID: itemID,
	})
	require.NoError(t, err)
	assert.Equal(t, itemID, out.ItemID)
}

func TestListByClassification_OrdenDePlanta(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newTableUC(store)

	mk := func(name string, col, row int) {
		_, err := uc.Create(ctx, dto.CreateTableRequest{
			Name: name, Classification: entity.ClassificationTriploid, ColumnIndex: col, RowIndex: row,
		})
		require.NoError(t, err)
	}
	mk("C2R0", 2, 0)
	mk("C0R1", 0, 1)
	mk("C0R0", 0, 0)
	mk("C1R3", 1, 3)

	out, err := uc.ListByClassification(ctx, entity.ClassificationTriploid)
	require.NoError(t, err)
	require.Len(t, out.Tables, 4)

	names := []string{out.Tables[0].Name, out.Tables[1].Name, out.Tables[2].Name, out.Tables[3].Name}
	assert.Equal(t, []string{"C0R0", "C0R1", "C1R3", "C2R0"}, names,
		"el orden es (column_index, row_index)")

	_, err = uc.ListByClassification(ctx, "HEXAPLOID")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SoloMesasVacias(t *testing.T) {
	ctx := context.Background()
	store := apptest.NewStore()
	uc := newTableUC(store)

	out, err := uc.Create(ctx, dto.CreateTableRequest{
		Name: "M1", Classification: entity.ClassificationTriploid,
	})
	require.NoError(t, err)

	now := time.Now()
	cellID := uuid.New().String()
	store.Cells[cellID] = entity.Cell{
		ID: cellID, TableID: out.ID, CellNumber: 1,
		Status: entity.CellStatusFilled, Quantity: 10, CreatedAt: now, UpdatedAt: now,
	}

	err = uc.Delete(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotEmpty)
	_, err = uc.Get(ctx, out.ID)
	assert.NoError(t, err, "la mesa sobrevive al intento de borrado")

	// Vaciada la celda, el borrado procede y arrastra las celdas.
	cell := store.Cells[cellID]
	cell.Status = entity.CellStatusEmpty
	cell.Quantity = 0
	store.Cells[cellID] = cell

	require.NoError(t, uc.Delete(ctx, out.ID))
	_, err = uc.Get(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Cells, "las celdas se borran con la mesa")
}

func TestDelete_MesaInexistente(t *testing.T) {
	ctx := context.Background()
	uc := newTableUC(apptest.NewStore())
	assert.ErrorIs(t, uc.Delete(ctx, uuid.New().String()), domain.ErrNotFound)
}
