package indicator

// EMA calculates an Exponential Moving Average seeded with the first
// value (the first output equals the first input). O(1) per update.
//
// The seeding convention matters: the MACD and signal-line values are
// only reproducible across runs if the first EMA output is the first
// price, not an SMA of the initial window.
type EMA struct {
	span    int
	alpha   float64
	current float64
	count   int
}

// NewEMA creates a new EMA with the given span. alpha = 2/(span+1).
func NewEMA(span int) *EMA {
	return &EMA{
		span:  span,
		alpha: 2.0 / float64(span+1),
	}
}

func (e *EMA) Update(price float64) {
	e.count++
	if e.count == 1 {
		e.current = price
		return
	}
	e.current = price*e.alpha + e.current*(1-e.alpha)
}

func (e *EMA) Value() float64 { return e.current }
func (e *EMA) Ready() bool    { return e.count > 0 }

// Reset clears the EMA state for reuse.
func (e *EMA) Reset() {
	e.current = 0
	e.count = 0
}
