package indicator

// MACD calculates Moving Average Convergence Divergence:
// EMA(fast) − EMA(slow) of closes, plus a signal line that is an
// EMA(signalSpan) of the MACD series itself. All three EMAs use the
// first-value seeding convention.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
	line   float64
	count  int
}

// NewMACD creates a MACD indicator (conventionally 12, 26, 9).
func NewMACD(fastSpan, slowSpan, signalSpan int) *MACD {
	return &MACD{
		fast:   NewEMA(fastSpan),
		slow:   NewEMA(slowSpan),
		signal: NewEMA(signalSpan),
	}
}

func (m *MACD) Update(price float64) {
	m.count++
	m.fast.Update(price)
	m.slow.Update(price)
	m.line = m.fast.Value() - m.slow.Value()
	m.signal.Update(m.line)
}

// Value returns the MACD line (fast EMA − slow EMA).
func (m *MACD) Value() float64 { return m.line }

// Signal returns the signal line (EMA of the MACD series).
func (m *MACD) Signal() float64 { return m.signal.Value() }

func (m *MACD) Ready() bool { return m.count > 0 }
