// Package finance holds the order/commission arithmetic and the monthly
// aggregations. Everything here is a pure function over rows the controllers
// already fetched; tenant scoping and persistence stay at the call site.
//
// All money moves as integer cents. Quantities may be fractional, so a line
// gross (quantity x unit price) is kept at full float precision and only the
// terminal result of a sum is rounded; see OrderTotal.
package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"oficina-backend/models"
)

// CommissionFor computes the snapshot commission for a new line item.
// The base is the line gross minus material cost, floored at zero so a
// part-heavy line never produces a negative commission. The result is
// rounded to the nearest cent.
func CommissionFor(quantity float64, unitPriceCents, materialCostCents int64, ratePercent float64) int64 {
	if ratePercent <= 0 {
		return 0
	}
	gross := LineGross(quantity, unitPriceCents)
	base := gross - float64(materialCostCents)
	if base <= 0 {
		return 0
	}
	amount := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return amount.IntPart()
}

// LineGross is quantity x unit price at full precision. Fractional quantities
// (e.g. 1.5 h of labor) can yield fractional cents here; callers sum first and
// round once.
func LineGross(quantity float64, unitPriceCents int64) float64 {
	return quantity * float64(unitPriceCents)
}

// OrderTotal recomputes an order's gross total from its current items: the sum
// of line grosses, rounded to the nearest cent only at the end. The total is
// gross revenue; material cost and commission are bookkeeping on the items and
// are not subtracted.
func OrderTotal(items []models.ServiceItem) int64 {
	var total float64
	for _, item := range items {
		total += LineGross(item.Quantity, item.UnitPriceCents)
	}
	return int64(math.Round(total))
}
