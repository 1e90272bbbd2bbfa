package backtest

import (
	"math"
	"time"

	"aitrader/internal/model"
)

// Ledger is the simulated cash/position state owned by a single
// backtest run. At most one open position at a time: no pyramiding,
// no shorting.
type Ledger struct {
	cash     float64
	position int64 // whole shares held, >= 0
	trades   []model.TradeLogEntry
}

// NewLedger creates a ledger with the given starting cash. The trade
// log starts empty but non-nil so a zero-trade run still serializes as
// an empty JSON array.
func NewLedger(initialCapital float64) *Ledger {
	return &Ledger{cash: initialCapital, trades: []model.TradeLogEntry{}}
}

func (l *Ledger) Cash() float64   { return l.cash }
func (l *Ledger) Position() int64 { return l.position }

// Trades returns the ordered log of executed trades.
func (l *Ledger) Trades() []model.TradeLogEntry { return l.trades }

// Value returns total value at the given price: cash + position × price.
func (l *Ledger) Value(price float64) float64 {
	return l.cash + float64(l.position)*price
}

// Buy invests fraction of current cash into whole shares at price.
// Guarded: a no-op unless the ledger is flat and at least one whole
// share is affordable. Returns true if a trade was executed.
func (l *Ledger) Buy(date time.Time, price, fraction float64) bool {
	if l.position > 0 {
		return false
	}
	shares := int64(math.Floor(l.cash * fraction / price))
	if shares <= 0 {
		return false
	}

	l.cash -= float64(shares) * price
	l.position = shares
	l.trades = append(l.trades, model.TradeLogEntry{
		Date:    date,
		Type:    model.ActionBuy,
		Price:   price,
		Shares:  shares,
		Balance: l.Value(price),
	})
	return true
}

// Sell liquidates the entire position at price. Guarded: a no-op when
// the ledger is flat. Returns true if a trade was executed.
func (l *Ledger) Sell(date time.Time, price float64) bool {
	if l.position == 0 {
		return false
	}

	shares := l.position
	l.cash += float64(shares) * price
	l.position = 0
	l.trades = append(l.trades, model.TradeLogEntry{
		Date:    date,
		Type:    model.ActionSell,
		Price:   price,
		Shares:  shares,
		Balance: l.cash,
	})
	return true
}
