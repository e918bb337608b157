package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/inventory"
)

func TestDelta_Validate(t *testing.T) {
	cases := []struct {
		name string
		d    inventory.Delta
		want error
	}{
		{"entrada ok", inventory.Delta{ProductID: "p", Type: entity.MovementTypeIn, Quantity: 1}, nil},
		{"saida ok", inventory.Delta{ProductID: "p", Type: entity.MovementTypeOut, Quantity: 5}, nil},
		{"sin producto", inventory.Delta{Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.Delta{ProductID: "p", Type: "ajuste", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.Delta{ProductID: "p", Type: entity.MovementTypeIn}, domain.ErrInvalidQuantity},
		{"cantidad negativa", inventory.Delta{ProductID: "p", Type: entity.MovementTypeOut, Quantity: -2}, domain.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDelta_InverseCancels(t *testing.T) {
	d := inventory.Delta{ProductID: "p", Type: entity.MovementTypeIn, Quantity: 7}
	assert.Equal(t, int64(7), d.Signed())
	assert.Equal(t, int64(-7), d.Inverse().Signed())
	assert.Equal(t, d, d.Inverse().Inverse())
	assert.Equal(t, int64(0), inventory.Net(d, d.Inverse())["p"])
}

func TestProductionLegs_ReverseAllNetsZero(t *testing.T) {
	p := &entity.Production{
		ProductID: "Q",
		Quantity:  2,
		Inputs: []entity.ProductionInput{
			{ProductID: "R", Quantity: 1},
			{ProductID: "S", Quantity: 3},
		},
	}
	legs := inventory.ProductionLegs(p)
	require.Len(t, legs, 3)

	net := inventory.Net(legs...)
	assert.Equal(t, map[string]int64{"Q": 2, "R": -1, "S": -3}, net)

	undo := inventory.ReverseAll(legs)
	require.Len(t, undo, 3)
	all := append(legs, undo...)
	for id, v := range inventory.Net(all...) {
		assert.Zerof(t, v, "producto %s con deriva", id)
	}
}

func TestProductionLegs_SameProductAsInput(t *testing.T) {
	p := &entity.Production{
		ProductID: "Q",
		Quantity:  5,
		Inputs:    []entity.ProductionInput{{ProductID: "Q", Quantity: 2}},
	}
	assert.Equal(t, int64(3), inventory.Net(inventory.ProductionLegs(p)...)["Q"])
}

func TestCountDelta(t *testing.T) {
	d, ok := inventory.CountDelta("P", 1)
	require.True(t, ok)
	assert.Equal(t, inventory.Delta{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 1}, d)

	d, ok = inventory.CountDelta("P", -4)
	require.True(t, ok)
	assert.Equal(t, inventory.Delta{ProductID: "P", Type: entity.MovementTypeOut, Quantity: 4}, d)

	_, ok = inventory.CountDelta("P", 0)
	assert.False(t, ok)
}

func TestLossDelta_AlwaysSaida(t *testing.T) {
	d := inventory.LossDelta(&entity.Loss{ProductID: "P", Quantity: 3})
	assert.Equal(t, entity.MovementTypeOut, d.Type)
	assert.Equal(t, int64(-3), d.Signed())
}
