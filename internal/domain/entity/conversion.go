package entity

// ConversionResult is the outcome of converting an amount between
// currencies. It is derived, never persisted.
type ConversionResult struct {
	// Amount is the converted value, rounded to exactly two decimals.
	Amount float64 `json:"amount"`
	// Currency is the target currency code.
	Currency string `json:"currency"`
	// IsEstimated is true when the conversion used the latest available
	// rate table instead of a table dated to the expense's own day.
	IsEstimated bool `json:"is_estimated"`
}
