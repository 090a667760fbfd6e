package cart

import (
	"github.com/shopspring/decimal"
)

// regroup merges entries sharing an id (summing qty up to MaxQty, first
// entry's fields win) and drops entries with qty <= 0. Order of first
// appearance is kept.
func regroup(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[ProductID]int, len(items))
	for _, it := range items {
		it.Qty = min(it.Qty, MaxQty)
		if i, ok := index[it.ID]; ok {
			out[i].Qty = addQty(out[i].Qty, it.Qty)
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}

	kept := out[:0]
	for _, it := range out {
		if it.Qty > 0 {
			kept = append(kept, it)
		}
	}
	return kept
}

// addQty sums two quantities, each at most MaxQty, capping at MaxQty.
func addQty(a, b int) int {
	return min(a+b, MaxQty)
}

// totals returns Σ qty*price and Σ qty*evPoint. The loyalty total is zero when
// the cart owner is not authenticated.
func totals(items []Item, authenticated bool) (total, evPointTotal decimal.Decimal) {
	total, evPointTotal = decimal.Zero, decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Qty))
		total = total.Add(it.Price.Mul(qty))
		if authenticated {
			evPointTotal = evPointTotal.Add(it.EVPoint.Mul(qty))
		}
	}
	return total, evPointTotal
}

// CalculateTotalDiscount returns Σ qty*discount over items.
func CalculateTotalDiscount(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Discount.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return sum
}
