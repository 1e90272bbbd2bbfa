package model

import "time"

// Action represents a trading decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// IndicatorSnapshot holds all indicator values computed at the last bar
// of a series. All fields are finite once the window has >= 20 bars.
type IndicatorSnapshot struct {
	RSI          float64 `json:"rsi"`
	MACD         float64 `json:"macd"`
	MACDSignal   float64 `json:"macd_signal"`
	BBUpper      float64 `json:"bb_upper"`
	BBLower      float64 `json:"bb_lower"`
	BBMiddle     float64 `json:"bb_middle"`
	CurrentPrice float64 `json:"current_price"`
}

// TradingSignal is a discrete trading decision with its supporting
// indicator snapshot. Produced fresh on every request, never mutated.
type TradingSignal struct {
	Symbol     string            `json:"symbol"`
	Signal     Action            `json:"signal"`
	Confidence float64           `json:"confidence"`
	TS         time.Time         `json:"timestamp"`
	Indicators IndicatorSnapshot `json:"indicators"`
}
