package model

import "errors"

// Error taxonomy shared across the indicator, signal, and backtest packages.
var (
	// ErrInsufficientData means fewer bars were supplied than the longest
	// indicator lookback requires (20, Bollinger Bands).
	ErrInsufficientData = errors.New("insufficient data: need at least 20 bars")

	// ErrMalformedInput means a bar violated the series contract
	// (non-finite price or non-increasing timestamp). Never recovered —
	// it indicates a broken upstream data feed.
	ErrMalformedInput = errors.New("malformed bar data")

	// ErrNoData means the provider has no history for the symbol/range.
	// An expected outcome for illiquid or newly listed symbols.
	ErrNoData = errors.New("no data available")
)
