package report

import (
	"sort"
	"time"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// Tier classifies a product's trailing sale volume.
type Tier string

const (
	TierFast   Tier = "fast"
	TierMedium Tier = "medium"
	TierSlow   Tier = "slow"
)

// Movement is the classification result for one product.
type Movement struct {
	QuantitySold float64 `json:"quantity_sold"`
	Tier         Tier    `json:"tier"`
}

// ClassifyMovement buckets every catalog product into fast/medium/slow
// terciles of quantity sold over the trailing window. Products with no
// sales in the window are slow with quantity 0. The percentile is
// positional: the value at floor(0.33*n) / floor(0.67*n) of the
// ascending-sorted quantities across products that sold at least once.
func ClassifyMovement(products []domain.Product, sales []domain.Sale, windowDays int, now time.Time, loc *time.Location) map[string]Movement {
	if windowDays <= 0 {
		windowDays = 30
	}
	if now.IsZero() {
		now = time.Now()
	}
	if loc == nil {
		loc = time.Local
	}
	start := now.AddDate(0, 0, -windowDays)

	sold := make(map[string]float64)
	for _, sale := range sales {
		t, ok := ParseTimestamp(sale.Timestamp, loc)
		if !ok || t.Before(start) || t.After(now) {
			continue
		}
		for _, item := range sale.Items {
			if item.ProductID == "" {
				continue
			}
			sold[item.ProductID] += sanitize(item.Quantity)
		}
	}

	// Percentiles over products that actually sold.
	var quantities []float64
	for _, p := range products {
		if q := sold[p.ID]; q > 0 {
			quantities = append(quantities, q)
		}
	}
	sort.Float64s(quantities)

	var p33, p67 float64
	if n := len(quantities); n > 0 {
		p33 = quantities[int(0.33*float64(n))]
		p67 = quantities[int(0.67*float64(n))]
	}

	result := make(map[string]Movement, len(products))
	for _, p := range products {
		q := sold[p.ID]
		tier := TierSlow
		switch {
		case q == 0:
			tier = TierSlow
		case q >= p67:
			tier = TierFast
		case q >= p33:
			tier = TierMedium
		}
		result[p.ID] = Movement{QuantitySold: q, Tier: tier}
	}
	return result
}
