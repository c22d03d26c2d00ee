package reorg

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/grid"
	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	domaingrid "github.com/jhoicas/Ostricola-api/internal/domain/grid"
)

// Options parámetros explícitos de la reorganización. El ratio de llenado es
// una convención de siembra de la explotación, no una regla física: vive en
// configuración y puede sobreescribirse por llamada.
type Options struct {
	CellsPerTable int
	FillRatio     float64
}

// UseCase reconstruye la cuadrícula de todas las mesas en UNA transacción:
// una reorganización jamás queda aplicada a medias. Convención de planta: las
// mesas se recorren agrupadas por clasificación y, dentro de cada grupo, por
// (column_index, row_index).
type UseCase struct {
	txRunner ports.TxRunner
	defaults Options
	notifier ports.Notifier
}

// NewUseCase construye el caso de uso con los valores por defecto de config.
func NewUseCase(txRunner ports.TxRunner, defaults Options, notifier ports.Notifier) *UseCase {
	if defaults.CellsPerTable < 1 {
		defaults.CellsPerTable = 20
	}
	return &UseCase{txRunner: txRunner, defaults: defaults, notifier: notifier}
}

// RebuildAll reconstruye todas las cuadrículas y devuelve el conteo de celdas
// escritas por mesa. opts nil usa los valores configurados.
func (uc *UseCase) RebuildAll(ctx context.Context, opts *Options) (*dto.ReorgResponse, error) {
	o := uc.defaults
	if opts != nil {
		if opts.CellsPerTable > 0 {
			o.CellsPerTable = opts.CellsPerTable
		}
		if opts.FillRatio > 0 {
			o.FillRatio = opts.FillRatio
		}
	}
	policy := domaingrid.RatioPolicy(o.FillRatio)

	var results []dto.ReorgTableResult
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// ListAllForUpdate bloquea en orden de ID (estable frente a los locks
		// de los traslados); el recorrido de reconstrucción usa el orden
		// espacial por clasificación.
		tables, err := r.Tables.ListAllForUpdate(ctx)
		if err != nil {
			return err
		}
		for _, group := range partition(tables) {
			for _, t := range group {
				cells, err := grid.RebuildInTx(ctx, r, t.ID, o.CellsPerTable, policy)
				if err != nil {
					return err
				}
				results = append(results, dto.ReorgTableResult{
					TableID:        t.ID,
					Name:           t.Name,
					Classification: t.Classification,
					Cells:          len(cells),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := 0
	for _, res := range results {
		total += res.Cells
	}
	now := time.Now()
	uc.notifier.ReorganizationCompleted(ctx, ports.ReorgEvent{
		Tables:     len(results),
		Cells:      total,
		OccurredAt: now,
	})
	return &dto.ReorgResponse{Tables: results, Total: total, RanAt: now}, nil
}

// partition separa las mesas en grupos por clasificación (triploide primero)
// y ordena cada grupo por (column_index, row_index).
func partition(tables []*entity.Table) [][]*entity.Table {
	groups := map[string][]*entity.Table{}
	for _, t := range tables {
		groups[t.Classification] = append(groups[t.Classification], t)
	}
	ordered := make([][]*entity.Table, 0, 2)
	for _, class := range []string{entity.ClassificationTriploid, entity.ClassificationDiploid} {
		group := groups[class]
		sort.Slice(group, func(i, j int) bool {
			if group[i].ColumnIndex != group[j].ColumnIndex {
				return group[i].ColumnIndex < group[j].ColumnIndex
			}
			return group[i].RowIndex < group[j].RowIndex
		})
		if len(group) > 0 {
			ordered = append(ordered, group)
		}
	}
	return ordered
}
