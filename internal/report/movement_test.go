package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

func saleOf(ts, productID string, qty float64) domain.Sale {
	return domain.Sale{
		Timestamp: ts,
		Items:     []domain.SaleItem{{ProductID: productID, Quantity: qty}},
	}
}

func TestClassifyMovementDegenerateSingleSeller(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	sales := []domain.Sale{
		saleOf("2024-06-10T10:00:00+03:00", "a", 10),
	}

	got := ClassifyMovement(products, sales, 30, testNow(), nairobi)

	// Single-element distribution: p33 == p67 == 10, so A is fast.
	require.Contains(t, got, "a")
	assert.Equal(t, TierFast, got["a"].Tier)
	assert.Equal(t, 10.0, got["a"].QuantitySold)

	assert.Equal(t, TierSlow, got["b"].Tier)
	assert.Zero(t, got["b"].QuantitySold)
}

func TestClassifyMovementTerciles(t *testing.T) {
	var products []domain.Product
	var sales []domain.Sale
	// Nine products selling 1..9 units inside the window.
	for i := 1; i <= 9; i++ {
		id := fmt.Sprintf("p%d", i)
		products = append(products, domain.Product{ID: id})
		sales = append(sales, saleOf("2024-06-10T10:00:00+03:00", id, float64(i)))
	}

	got := ClassifyMovement(products, sales, 30, testNow(), nairobi)

	// n=9: p33 = value at index 2 (3 units), p67 = index 6 (7 units).
	assert.Equal(t, TierSlow, got["p2"].Tier)
	assert.Equal(t, TierMedium, got["p3"].Tier)
	assert.Equal(t, TierMedium, got["p6"].Tier)
	assert.Equal(t, TierFast, got["p7"].Tier)
	assert.Equal(t, TierFast, got["p9"].Tier)
}

func TestClassifyMovementPartitionsSellers(t *testing.T) {
	var products []domain.Product
	var sales []domain.Sale
	for i := 1; i <= 7; i++ {
		id := fmt.Sprintf("p%d", i)
		products = append(products, domain.Product{ID: id})
		if i%2 == 1 {
			sales = append(sales, saleOf("2024-06-12T10:00:00+03:00", id, float64(i*2)))
		}
	}

	got := ClassifyMovement(products, sales, 30, testNow(), nairobi)

	sellers := 0
	tiers := map[Tier]int{}
	for _, m := range got {
		if m.QuantitySold > 0 {
			sellers++
			tiers[m.Tier]++
		} else {
			assert.Equal(t, TierSlow, m.Tier)
		}
	}
	assert.Equal(t, sellers, tiers[TierFast]+tiers[TierMedium]+tiers[TierSlow])
}

func TestClassifyMovementIgnoresSalesOutsideWindow(t *testing.T) {
	products := []domain.Product{{ID: "a"}}
	sales := []domain.Sale{
		saleOf("2024-04-01T10:00:00+03:00", "a", 50), // older than 30 days
		saleOf("not-a-date", "a", 50),
	}

	got := ClassifyMovement(products, sales, 30, testNow(), nairobi)
	assert.Equal(t, TierSlow, got["a"].Tier)
	assert.Zero(t, got["a"].QuantitySold)
}
