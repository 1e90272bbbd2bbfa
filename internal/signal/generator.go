// Package signal maps an indicator snapshot to a discrete trading
// decision via rule-based voting.
//
// Fixed rule weights are used in place of a trained classifier so the
// decision is auditable and reproducible without a training pipeline.
package signal

import (
	"time"

	"aitrader/internal/model"
)

// Rule confidence weights. Tunable constants, not learned parameters.
const (
	WeightRSI  = 0.7
	WeightMACD = 0.6
	WeightBoll = 0.8

	// RSI vote thresholds
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	// DefaultThreshold gates a decision: a side must outscore both the
	// other side and this threshold to win.
	DefaultThreshold = 0.6
)

// Generator turns indicator snapshots into trading signals.
type Generator struct {
	threshold float64
}

// NewGenerator creates a Generator with the given prediction threshold.
// threshold <= 0 selects DefaultThreshold.
func NewGenerator(threshold float64) *Generator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Generator{threshold: threshold}
}

// Generate produces one TradingSignal from a snapshot. Pure and
// deterministic: the same snapshot always yields the same signal.
//
// Three independent rules vote with fixed weights:
//
//	RSI oversold/overbought   rsi < 30 → BUY, rsi > 70 → SELL   0.7
//	MACD crossover            macd vs signal line               0.6
//	Bollinger breakout        price vs upper/lower band         0.8
//
// BUY/SELL weights are summed per side; the decision requires the
// winning side to strictly exceed both the other side and the
// threshold. Ties and quiet snapshots resolve to HOLD, confidence 0.
func (g *Generator) Generate(symbol string, ts time.Time, snap model.IndicatorSnapshot) model.TradingSignal {
	var buyScore, sellScore float64

	// RSI oversold/overbought
	switch {
	case snap.RSI < rsiOversold:
		buyScore += WeightRSI
	case snap.RSI > rsiOverbought:
		sellScore += WeightRSI
	}

	// MACD crossover. Strict comparisons: an exact tie casts no vote,
	// which keeps a flat series at HOLD.
	switch {
	case snap.MACD > snap.MACDSignal:
		buyScore += WeightMACD
	case snap.MACD < snap.MACDSignal:
		sellScore += WeightMACD
	}

	// Bollinger breakout
	switch {
	case snap.CurrentPrice < snap.BBLower:
		buyScore += WeightBoll
	case snap.CurrentPrice > snap.BBUpper:
		sellScore += WeightBoll
	}

	action := model.ActionHold
	confidence := 0.0
	switch {
	case buyScore > sellScore && buyScore > g.threshold:
		action = model.ActionBuy
		confidence = buyScore
	case sellScore > buyScore && sellScore > g.threshold:
		action = model.ActionSell
		confidence = sellScore
	}
	if confidence > 1 {
		confidence = 1
	}

	return model.TradingSignal{
		Symbol:     symbol,
		Signal:     action,
		Confidence: confidence,
		TS:         ts,
		Indicators: snap,
	}
}
