package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"empty a filled", entity.CellStatusEmpty, entity.CellStatusFilled, true},
		{"filled a harvested", entity.CellStatusFilled, entity.CellStatusHarvested, true},
		{"empty a mantenimiento", entity.CellStatusEmpty, entity.CellStatusMaintenance, true},
		{"filled a mantenimiento", entity.CellStatusFilled, entity.CellStatusMaintenance, true},
		{"harvested a mantenimiento", entity.CellStatusHarvested, entity.CellStatusMaintenance, true},
		{"mantenimiento a empty", entity.CellStatusMaintenance, entity.CellStatusEmpty, true},

		{"empty a harvested salta un paso", entity.CellStatusEmpty, entity.CellStatusHarvested, false},
		{"filled a empty sin pasar por mantenimiento", entity.CellStatusFilled, entity.CellStatusEmpty, false},
		{"harvested a filled retrocede", entity.CellStatusHarvested, entity.CellStatusFilled, false},
		{"harvested a empty directo", entity.CellStatusHarvested, entity.CellStatusEmpty, false},
		{"mantenimiento a mantenimiento", entity.CellStatusMaintenance, entity.CellStatusMaintenance, false},
		{"mantenimiento a filled", entity.CellStatusMaintenance, entity.CellStatusFilled, false},
		{"estado desconocido", "BROKEN", entity.CellStatusEmpty, false},
		{"destino desconocido", entity.CellStatusEmpty, "BROKEN", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, entity.CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidCellStatus(t *testing.T) {
	assert.True(t, entity.ValidCellStatus(entity.CellStatusEmpty))
	assert.True(t, entity.ValidCellStatus(entity.CellStatusMaintenance))
	assert.False(t, entity.ValidCellStatus("empty"), "los estados son sensibles a mayúsculas")
	assert.False(t, entity.ValidCellStatus(""))
}
