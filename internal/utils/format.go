package utils

import "github.com/shopspring/decimal"

const (
	// DefaultQuantityPrecision is a fallback decimal precision for order
	// quantities. 8 decimals allows satoshi-level sizing for BTC-like
	// assets. Production systems should use symbol-specific precision from
	// the exchange info endpoint (LOT_SIZE, PRICE_FILTER).
	DefaultQuantityPrecision = 8
)

// FormatQuantity renders a quantity as the exact decimal string the
// exchange API expects, flooring to the given precision so a rounded-up
// quantity can never exceed the user's intent.
func FormatQuantity(quantity float64, precision int32) string {
	return decimal.NewFromFloat(quantity).RoundFloor(precision).String()
}

// FormatPrice renders a price as a decimal string without float artifacts
// or trailing zeros.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).String()
}

// PositiveQuantity reports whether the quantity is still positive after
// flooring to the given precision.
func PositiveQuantity(quantity float64, precision int32) bool {
	return decimal.NewFromFloat(quantity).RoundFloor(precision).IsPositive()
}
