package indicator

// RSI calculates the Relative Strength Index over a trailing window of
// daily deltas: the average gain divided by the average loss over the
// last `period` deltas, converted via RSI = 100 − 100/(1+RS).
//
// Zero-loss policy: a window with gains but no losses reads 100
// (clamped instead of dividing by zero); a window with no movement at
// all reads 50 so a flat series stays neutral.
type RSI struct {
	period    int
	deltas    []float64 // preallocated circular buffer of deltas
	idx       int
	nDeltas   int
	gainSum   float64
	lossSum   float64
	prevClose float64
	count     int
	current   float64
}

// NewRSI creates a new RSI indicator with the given period (typically 14).
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		deltas: make([]float64, period),
	}
}

func (r *RSI) Update(price float64) {
	r.count++
	if r.count == 1 {
		// First close — just record, no delta yet
		r.prevClose = price
		return
	}

	delta := price - r.prevClose
	r.prevClose = price

	if r.nDeltas >= r.period {
		// Evict the oldest delta being overwritten
		old := r.deltas[r.idx]
		if old > 0 {
			r.gainSum -= old
		} else {
			r.lossSum += old
		}
	} else {
		r.nDeltas++
	}

	r.deltas[r.idx] = delta
	r.idx = (r.idx + 1) % r.period
	if delta > 0 {
		r.gainSum += delta
	} else {
		r.lossSum -= delta
	}

	if r.nDeltas < r.period {
		return
	}

	avgGain := r.gainSum / float64(r.period)
	avgLoss := r.lossSum / float64(r.period)

	switch {
	case avgLoss > 0:
		rs := avgGain / avgLoss
		r.current = 100.0 - 100.0/(1.0+rs)
	case avgGain > 0:
		r.current = 100.0
	default:
		// No movement in the window at all
		r.current = 50.0
	}
}

func (r *RSI) Value() float64 { return r.current }
func (r *RSI) Ready() bool    { return r.nDeltas >= r.period }
