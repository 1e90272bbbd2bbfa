package model

import "time"

// TradeLogEntry records one simulated trade executed during a backtest.
// Balance is the resulting total value (cash + position × price).
type TradeLogEntry struct {
	Date    time.Time `json:"date"`
	Type    Action    `json:"type"`
	Price   float64   `json:"price"`
	Shares  int64     `json:"shares"`
	Balance float64   `json:"balance"`
}

// BacktestReport summarizes a completed simulation run. When the provider
// had no usable history, Error is set and the numeric fields are zero.
// The balance/return/trades keys always render, even at their zero
// values: a zero-return, zero-trade run is a real result, not an
// absent one.
type BacktestReport struct {
	Symbol         string          `json:"symbol,omitempty"`
	InitialBalance float64         `json:"initial_balance"`
	FinalBalance   float64         `json:"final_balance"`
	ReturnPct      float64         `json:"return_pct"`
	Trades         []TradeLogEntry `json:"trades"`
	Error          string          `json:"error,omitempty"`
}

// NoDataReport is the fixed report returned when the bar provider has
// fewer than 20 bars for the requested window.
func NoDataReport() BacktestReport {
	return BacktestReport{Trades: []TradeLogEntry{}, Error: "No historical data available for backtesting"}
}
