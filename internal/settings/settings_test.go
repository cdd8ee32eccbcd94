package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	want := Settings{
		ShopName:          "Mama Njeri Shop",
		Currency:          "KSH",
		TaxRate:           16,
		LowStockThreshold: 5,
		ReceiptFooter:     "Asante, karibu tena",
	}
	require.NoError(t, store.Save(ctx, want))

	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
