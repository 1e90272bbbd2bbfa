package backtest

import (
	"math"
	"testing"
	"time"

	"aitrader/internal/model"
)

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestLedger_BuyInvestsFractionInWholeShares(t *testing.T) {
	// floor(100000 * 0.95 / 80) = floor(1187.5) = 1187 shares
	l := NewLedger(100000)
	if !l.Buy(day, 80, 0.95) {
		t.Fatal("buy rejected")
	}
	if l.Position() != 1187 {
		t.Errorf("position = %d, want 1187", l.Position())
	}
	wantCash := 100000 - 1187*80.0
	if math.Abs(l.Cash()-wantCash) > 1e-9 {
		t.Errorf("cash = %v, want %v", l.Cash(), wantCash)
	}

	trades := l.Trades()
	if len(trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(trades))
	}
	tr := trades[0]
	if tr.Type != model.ActionBuy || tr.Shares != 1187 || tr.Price != 80 {
		t.Errorf("unexpected trade: %+v", tr)
	}
	// Balance records cash + position value, which at the fill price is
	// the pre-trade total.
	if math.Abs(tr.Balance-100000) > 1e-9 {
		t.Errorf("balance = %v, want 100000", tr.Balance)
	}
}

func TestLedger_BuyGuardedWhileInPosition(t *testing.T) {
	l := NewLedger(100000)
	l.Buy(day, 100, 0.95)
	if l.Buy(day.AddDate(0, 0, 1), 90, 0.95) {
		t.Error("second buy executed while position open")
	}
	if len(l.Trades()) != 1 {
		t.Errorf("trades = %d, want 1", len(l.Trades()))
	}
}

func TestLedger_BuyGuardedWhenUnaffordable(t *testing.T) {
	// 100 * 0.95 = 95 buys zero whole shares at price 200.
	l := NewLedger(100)
	if l.Buy(day, 200, 0.95) {
		t.Error("buy executed with zero affordable shares")
	}
	if l.Cash() != 100 || l.Position() != 0 {
		t.Errorf("ledger mutated: cash=%v position=%d", l.Cash(), l.Position())
	}
}

func TestLedger_SellGuardedWhenFlat(t *testing.T) {
	l := NewLedger(100000)
	if l.Sell(day, 100) {
		t.Error("sell executed with no position")
	}
	if len(l.Trades()) != 0 {
		t.Errorf("trades = %d, want 0", len(l.Trades()))
	}
}

func TestLedger_RoundTrip(t *testing.T) {
	l := NewLedger(100000)
	l.Buy(day, 80, 0.95)                 // 1187 shares, cash 5040
	l.Sell(day.AddDate(0, 0, 10), 120)   // cash 5040 + 142440 = 147480
	if l.Position() != 0 {
		t.Errorf("position = %d, want 0", l.Position())
	}
	if math.Abs(l.Cash()-147480) > 1e-9 {
		t.Errorf("cash = %v, want 147480", l.Cash())
	}
	trades := l.Trades()
	if len(trades) != 2 {
		t.Fatalf("trades = %d, want 2", len(trades))
	}
	if trades[1].Type != model.ActionSell || trades[1].Shares != 1187 {
		t.Errorf("unexpected sell entry: %+v", trades[1])
	}
	if math.Abs(trades[1].Balance-147480) > 1e-9 {
		t.Errorf("sell balance = %v, want 147480", trades[1].Balance)
	}
}
