package model

import (
	"math"
	"time"
)

// Bar represents one OHLCV price observation for a single trading day.
type Bar struct {
	TS     time.Time `json:"timestamp"` // bar date (UTC, day-aligned)
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Finite reports whether all prices are positive finite floats and
// volume is non-negative.
func (b *Bar) Finite() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Volume >= 0 && !math.IsNaN(b.Volume) && !math.IsInf(b.Volume, 0)
}

// BarSeries is an ordered sequence of bars for one symbol,
// strictly increasing by timestamp. Calendar gaps are fine.
type BarSeries []Bar

// Closes extracts the closing-price sub-sequence.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i := range s {
		closes[i] = s[i].Close
	}
	return closes
}

// Validate checks the series contract: finite prices, strictly
// increasing timestamps.
func (s BarSeries) Validate() error {
	for i := range s {
		if !s[i].Finite() {
			return ErrMalformedInput
		}
		if i > 0 && !s[i].TS.After(s[i-1].TS) {
			return ErrMalformedInput
		}
	}
	return nil
}
