package indicator

import (
	"fmt"

	"aitrader/internal/model"
)

// Standard parameterization of the snapshot pipeline.
const (
	RSIPeriod  = 14
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
	BollPeriod = 20
	BollWidth  = 2.0

	// MinBars is the minimum series length for a snapshot: the Bollinger
	// window is the longest lookback in use.
	MinBars = BollPeriod
)

// Compute produces an IndicatorSnapshot for the last bar of the series.
//
// All indicators are computed over the entire supplied series up to and
// including the evaluation point; callers wanting a snapshot "as of bar
// N" truncate the series first. This is how the backtest simulator gets
// point-in-time values without look-ahead bias.
//
// Pure function of its input: no side effects, bit-identical output for
// identical input.
func Compute(series model.BarSeries) (model.IndicatorSnapshot, error) {
	if len(series) < MinBars {
		return model.IndicatorSnapshot{}, fmt.Errorf("%w, got %d", model.ErrInsufficientData, len(series))
	}
	if err := series.Validate(); err != nil {
		return model.IndicatorSnapshot{}, err
	}

	rsi := NewRSI(RSIPeriod)
	macd := NewMACD(MACDFast, MACDSlow, MACDSignal)
	boll := NewBoll(BollPeriod, BollWidth)

	for _, close := range series.Closes() {
		rsi.Update(close)
		macd.Update(close)
		boll.Update(close)
	}

	upper, middle, lower := boll.Bands()
	return model.IndicatorSnapshot{
		RSI:          rsi.Value(),
		MACD:         macd.Value(),
		MACDSignal:   macd.Signal(),
		BBUpper:      upper,
		BBMiddle:     middle,
		BBLower:      lower,
		CurrentPrice: series[len(series)-1].Close,
	}, nil
}
