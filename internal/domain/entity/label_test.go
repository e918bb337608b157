package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

func TestParseMeasureValue(t *testing.T) {
	for in, want := range map[string]string{"500": "500", " 0,5 ": "0.5", "1.25": "1.25", "0": "0"} {
		got, err := entity.ParseMeasureValue(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}
	for _, in := range []string{"", "meio quilo,,", "1,000.5", "-2", "abc"} {
		_, err := entity.ParseMeasureValue(in)
		assert.Error(t, err, in)
	}
}

func TestMeasureLabel(t *testing.T) {
	var none *entity.Measure
	assert.Equal(t, "", none.Label())
	assert.Equal(t, "", (&entity.Measure{Value: decimal.Zero, Unit: "g"}).Label())
	assert.Equal(t, "0.5kg", (&entity.Measure{Value: decimal.RequireFromString("0.5"), Unit: "kg"}).Label())
}
