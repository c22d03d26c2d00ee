package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ostricola-api/internal/domain/entity"
	"github.com/jhoicas/Ostricola-api/internal/domain/grid"
)

func TestRatioPolicy_SesentaPorCientoDeDiez(t *testing.T) {
	policy := grid.RatioPolicy(0.60)

	// Con 10 celdas las primeras 6 nacen FILLED y las últimas 4 EMPTY.
	for idx := 1; idx <= 6; idx++ {
		assert.Equal(t, entity.CellStatusFilled, policy(idx, 10), "celda %d", idx)
	}
	for idx := 7; idx <= 10; idx++ {
		assert.Equal(t, entity.CellStatusEmpty, policy(idx, 10), "celda %d", idx)
	}
}

func TestRatioPolicy_Redondeo(t *testing.T) {
	// 60% de 5 = 3 celdas llenas.
	policy := grid.RatioPolicy(0.60)
	assert.Equal(t, entity.CellStatusFilled, policy(3, 5))
	assert.Equal(t, entity.CellStatusEmpty, policy(4, 5))

	// 50% de 3 redondea a 2.
	half := grid.RatioPolicy(0.50)
	assert.Equal(t, entity.CellStatusFilled, half(2, 3))
	assert.Equal(t, entity.CellStatusEmpty, half(3, 3))
}

func TestRatioPolicy_Extremos(t *testing.T) {
	cero := grid.RatioPolicy(0)
	uno := grid.RatioPolicy(1)
	for idx := 1; idx <= 4; idx++ {
		assert.Equal(t, entity.CellStatusEmpty, cero(idx, 4))
		assert.Equal(t, entity.CellStatusFilled, uno(idx, 4))
	}

	// Ratios fuera de [0,1] se recortan al rango.
	negativo := grid.RatioPolicy(-0.5)
	desbordado := grid.RatioPolicy(1.5)
	assert.Equal(t, entity.CellStatusEmpty, negativo(1, 4))
	assert.Equal(t, entity.CellStatusFilled, desbordado(4, 4))
}

func TestAllEmptyPolicy(t *testing.T) {
	policy := grid.AllEmptyPolicy()
	for idx := 1; idx <= 3; idx++ {
		assert.Equal(t, entity.CellStatusEmpty, policy(idx, 3))
	}
}
