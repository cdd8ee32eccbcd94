package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSaleListEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"success envelope", `{"success":true,"sales":[{"id":"1"},{"id":"2"}]}`, 2},
		{"bare envelope", `{"sales":[{"id":"1"}]}`, 1},
		{"bare array", `[{"id":"1"}]`, 1},
		{"empty object", `{}`, 0},
		{"null", `null`, 0},
		{"garbage", `<html>deploy error</html>`, 0},
		{"wrong shape", `{"sales":"nope"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSaleList([]byte(tt.raw))
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestToExpenseListAndToProductList(t *testing.T) {
	expenses := ToExpenseList([]byte(`{"success":true,"expenses":[{"id":"e1","amount":10}]}`))
	require.Len(t, expenses, 1)
	assert.Equal(t, 10.0, expenses[0].Amount)

	products := ToProductList([]byte(`[{"id":"p1","stock":3}]`))
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].Stock)

	assert.Empty(t, ToExpenseList([]byte(`oops`)))
	assert.Empty(t, ToProductList([]byte(``)))
}
