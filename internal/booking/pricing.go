package booking

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const currencyScale = 2

// ComputeTotal derives a booking total from the service price plus the
// pickup/delivery fee, rounded to the currency scale. Totals must end up
// strictly positive; a free wash is a data error, not a promotion mechanism.
func ComputeTotal(servicePrice, deliveryFee decimal.Decimal) (decimal.Decimal, error) {
	if servicePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("service price must be > 0")
	}
	if deliveryFee.IsNegative() {
		return decimal.Zero, fmt.Errorf("delivery fee must be >= 0")
	}
	total := servicePrice.Add(deliveryFee).Round(currencyScale)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("total must be > 0")
	}
	return total, nil
}
