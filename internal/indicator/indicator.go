// Package indicator provides technical indicator calculations over bar data.
//
// Indicators are small streaming accumulators fed one closing price at a
// time. Compute drives a full set of them over a bar series and returns
// a point-in-time snapshot for the last bar.
package indicator

// Indicator is the interface for single-valued streaming indicators.
type Indicator interface {
	// Update feeds the next closing price and recalculates.
	Update(price float64)

	// Value returns the current calculated value. Returns 0 if not
	// enough data has been accumulated.
	Value() float64

	// Ready returns true when enough data has been accumulated.
	Ready() bool
}
