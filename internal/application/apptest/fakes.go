// Package apptest provee dobles en memoria de los puertos de persistencia
// para testear los casos de uso sin PostgreSQL. El TxRunner falso imita la
// semántica transaccional con snapshot y restauración: si la función falla,
// el estado vuelve exactamente al punto de partida.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios falsos.
type Store struct {
	Items     map[string]entity.Item
	Movements []entity.StockMovement
	Tables    map[string]entity.Table
	Cells     map[string]entity.Cell
	Transfers []entity.Transfer
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		Items:  make(map[string]entity.Item),
		Tables: make(map[string]entity.Table),
		Cells:  make(map[string]entity.Cell),
	}
}

func (s *Store) clone() *Store {
	c := NewStore()
	for k, v := range s.Items {
		c.Items[k] = v
	}
	for k, v := range s.Tables {
		c.Tables[k] = v
	}
	for k, v := range s.Cells {
		c.Cells[k] = v
	}
	c.Movements = append([]entity.StockMovement(nil), s.Movements...)
	c.Transfers = append([]entity.Transfer(nil), s.Transfers...)
	return c
}

func (s *Store) restore(from *Store) {
	s.Items = from.Items
	s.Tables = from.Tables
	s.Cells = from.Cells
	s.Movements = from.Movements
	s.Transfers = from.Transfers
}

// Repos construye el juego completo de repositorios falsos sobre el store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Items:     &ItemRepo{s: s},
		Movements: &MovementRepo{s: s},
		Tables:    &TableRepo{s: s},
		Cells:     &CellRepo{s: s},
		Transfers: &TransferRepo{s: s},
	}
}

// TxRunner ejecuta la función contra el store y restaura el snapshot si
// devuelve error. Los bloqueos de fila no se simulan: los tests de casos de
// uso son secuenciales.
type TxRunner struct {
	s *Store
	// FailCommit fuerza un error tras ejecutar fn con éxito, restaurando el
	// estado, para probar que nada queda a medias.
	FailCommit error
}

// NewTxRunner construye el runner falso.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

var _ ports.TxRunner = (*TxRunner)(nil)

// Run implementa ports.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	snapshot := t.s.clone()
	if err := fn(t.s.Repos()); err != nil {
		t.s.restore(snapshot)
		return err
	}
	if t.FailCommit != nil {
		t.s.restore(snapshot)
		return t.FailCommit
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ItemRepository
// ──────────────────────────────────────────────────────────────────────────────

// ItemRepo doble en memoria de repository.ItemRepository.
type ItemRepo struct {
	s *Store
}

var _ repository.ItemRepository = (*ItemRepo)(nil)

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.s.Items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, ok := r.s.Items[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) List(ctx context.Context, classification string, limit, offset int) ([]*entity.Item, error) {
	var all []entity.Item
	for _, it := range r.s.Items {
		if it.ArchivedAt != nil {
			continue
		}
		if classification != "" && it.Classification != classification {
			continue
		}
		all = append(all, it)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return pageItems(all, limit, offset), nil
}

func pageItems(all []entity.Item, limit, offset int) []*entity.Item {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.Item, len(all))
	for i := range all {
		cp := all[i]
		out[i] = &cp
	}
	return out
}

func (r *ItemRepo) UpdateMetadata(ctx context.Context, item *entity.Item) error {
	if _, ok := r.s.Items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Items[item.ID] = *item
	return nil
}

func (r *ItemRepo) Archive(ctx context.Context, id string) error {
	it, ok := r.s.Items[id]
	if !ok || it.ArchivedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	it.ArchivedAt = &now
	it.UpdatedAt = now
	r.s.Items[id] = it
	return nil
}

func (r *ItemRepo) quantityOnHand(itemID string) int64 {
	var sum int64
	for _, m := range r.s.Movements {
		if m.ItemID != itemID {
			continue
		}
		sum += m.Delta()
	}
	return sum
}

func (r *ItemRepo) Stats(ctx context.Context) ([]repository.ClassificationStat, error) {
	byClass := map[string]*repository.ClassificationStat{}
	for _, it := range r.s.Items {
		if it.ArchivedAt != nil {
			continue
		}
		st, ok := byClass[it.Classification]
		if !ok {
			st = &repository.ClassificationStat{Classification: it.Classification}
			byClass[it.Classification] = st
		}
		st.Items++
		st.TotalQuantity += r.quantityOnHand(it.ID)
	}
	var out []repository.ClassificationStat
	for _, st := range byClass {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Classification < out[j].Classification })
	return out, nil
}

func (r *ItemRepo) ListBelowReorder(ctx context.Context, limit, offset int) ([]repository.LowStockItem, error) {
	var all []repository.LowStockItem
	for _, it := range r.s.Items {
		if it.ArchivedAt != nil || it.ReorderPoint <= 0 {
			continue
		}
		onHand := r.quantityOnHand(it.ID)
		if onHand < it.ReorderPoint {
			all = append(all, repository.LowStockItem{
				ItemID:         it.ID,
				Name:           it.Name,
				Classification: it.Classification,
				QuantityOnHand: onHand,
				ReorderPoint:   it.ReorderPoint,
			})
		}
	}
	// Mayor déficit primero.
	sort.Slice(all, func(i, j int) bool {
		return all[i].ReorderPoint-all[i].QuantityOnHand > all[j].ReorderPoint-all[j].QuantityOnHand
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementRepository
// ──────────────────────────────────────────────────────────────────────────────

// MovementRepo doble en memoria de repository.MovementRepository.
type MovementRepo struct {
	s *Store
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	for _, m := range r.s.Movements {
		if m.ItemID == movement.ItemID && m.Reference == movement.Reference {
			return domain.ErrDuplicateReference
		}
	}
	r.s.Movements = append(r.s.Movements, *movement)
	return nil
}

func (r *MovementRepo) GetByReference(ctx context.Context, itemID, reference string) (*entity.StockMovement, error) {
	for _, m := range r.s.Movements {
		if m.ItemID == itemID && m.Reference == reference {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) QuantityOnHand(ctx context.Context, itemID string) (int64, error) {
	var sum int64
	for _, m := range r.s.Movements {
		if m.ItemID == itemID {
			sum += m.Delta()
		}
	}
	return sum, nil
}

func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var all []entity.StockMovement
	for _, m := range r.s.Movements {
		if m.ItemID != itemID {
			continue
		}
		if since != nil && m.CreatedAt.Before(*since) {
			continue
		}
		all = append(all, m)
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.StockMovement, len(all))
	for i := range all {
		cp := all[i]
		out[i] = &cp
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TableRepository
// ──────────────────────────────────────────────────────────────────────────────

// TableRepo doble en memoria de repository.TableRepository.
type TableRepo struct {
	s *Store
}

var _ repository.TableRepository = (*TableRepo)(nil)

func (r *TableRepo) Create(ctx context.Context, table *entity.Table) error {
	r.s.Tables[table.ID] = *table
	return nil
}

func (r *TableRepo) GetByID(ctx context.Context, id string) (*entity.Table, error) {
	t, ok := r.s.Tables[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *TableRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Table, error) {
	return r.GetByID(ctx, id)
}

func (r *TableRepo) ListByClassification(ctx context.Context, classification string) ([]*entity.Table, error) {
	var all []entity.Table
	for _, t := range r.s.Tables {
		if classification != "" && t.Classification != classification {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ColumnIndex != all[j].ColumnIndex {
			return all[i].ColumnIndex < all[j].ColumnIndex
		}
		return all[i].RowIndex < all[j].RowIndex
	})
	out := make([]*entity.Table, len(all))
	for i := range all {
		cp := all[i]
		out[i] = &cp
	}
	return out, nil
}

func (r *TableRepo) ListAllForUpdate(ctx context.Context) ([]*entity.Table, error) {
	var all []entity.Table
	for _, t := range r.s.Tables {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	out := make([]*entity.Table, len(all))
	for i := range all {
		cp := all[i]
		out[i] = &cp
	}
	return out, nil
}

func (r *TableRepo) Delete(ctx context.Context, id string) error {
	delete(r.s.Tables, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// CellRepository
// ──────────────────────────────────────────────────────────────────────────────

// CellRepo doble en memoria de repository.CellRepository.
type CellRepo struct {
	s *Store
}

var _ repository.CellRepository = (*CellRepo)(nil)

func (r *CellRepo) Create(ctx context.Context, cell *entity.Cell) error {
	r.s.Cells[cell.ID] = *cell
	return nil
}

func (r *CellRepo) ReplaceForTable(ctx context.Context, tableID string, cells []*entity.Cell) error {
	if err := r.DeleteByTable(ctx, tableID); err != nil {
		return err
	}
	for _, c := range cells {
		r.s.Cells[c.ID] = *c
	}
	return nil
}

func (r *CellRepo) GetByID(ctx context.Context, id string) (*entity.Cell, error) {
	c, ok := r.s.Cells[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *CellRepo) MaxNumber(ctx context.Context, tableID string) (int, error) {
	max := 0
	for _, c := range r.s.Cells {
		if c.TableID == tableID && c.CellNumber > max {
			max = c.CellNumber
		}
	}
	return max, nil
}

func (r *CellRepo) ListByTable(ctx context.Context, tableID string) ([]*entity.Cell, error) {
	var all []entity.Cell
	for _, c := range r.s.Cells {
		if c.TableID == tableID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CellNumber < all[j].CellNumber })
	out := make([]*entity.Cell, len(all))
	for i := range all {
		cp := all[i]
		out[i] = &cp
	}
	return out, nil
}

func (r *CellRepo) UpdateStatus(ctx context.Context, cell *entity.Cell) error {
	if _, ok := r.s.Cells[cell.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Cells[cell.ID] = *cell
	return nil
}

func (r *CellRepo) CountNotEmpty(ctx context.Context, tableID string) (int, error) {
	count := 0
	for _, c := range r.s.Cells {
		if c.TableID == tableID && c.Status != entity.CellStatusEmpty {
			count++
		}
	}
	return count, nil
}

func (r *CellRepo) DeleteByTable(ctx context.Context, tableID string) error {
	for id, c := range r.s.Cells {
		if c.TableID == tableID {
			delete(r.s.Cells, id)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TransferRepository
// ──────────────────────────────────────────────────────────────────────────────

// TransferRepo doble en memoria de repository.TransferRepository.
type TransferRepo struct {
	s *Store
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

func (r *TransferRepo) Create(ctx context.Context, transfer *entity.Transfer) error {
	if transfer.Reference != "" {
		for _, t := range r.s.Transfers {
			if t.Reference == transfer.Reference {
				return domain.ErrDuplicateReference
			}
		}
	}
	r.s.Transfers = append(r.s.Transfers, *transfer)
	return nil
}

func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	for _, t := range r.s.Transfers {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *TransferRepo) GetByReference(ctx context.Context, reference string) (*entity.Transfer, error) {
	if reference == "" {
		return nil, nil
	}
	for _, t := range r.s.Transfers {
		if t.Reference == reference {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *TransferRepo) ListByTable(ctx context.Context, tableID string, limit, offset int) ([]*entity.Transfer, error) {
	var all []entity.Transfer
	// Inserción cronológica: recorrer al revés da el más reciente primero.
	for i := len(r.s.Transfers) - 1; i >= 0; i-- {
		t := r.s.Transfers[i]
		if t.SourceID == tableID || t.DestID == tableID {
			all = append(all, t)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.Transfer, len(all))
	for i := range all {
		cp := all[i]
		out[i] = &cp
	}
	return out, nil
}
