package indicator

import "math"

// Boll calculates Bollinger Bands: a simple moving average (middle band)
// ± k × sample standard deviation over a rolling window.
// Uses a preallocated circular buffer like the SMA it is built on.
type Boll struct {
	period int
	k      float64
	buf    []float64
	idx    int
	count  int
	sum    float64
}

// NewBoll creates Bollinger Bands with the given period and band width k
// (conventionally 20 and 2).
func NewBoll(period int, k float64) *Boll {
	return &Boll{
		period: period,
		k:      k,
		buf:    make([]float64, period),
	}
}

func (b *Boll) Update(price float64) {
	if b.count >= b.period {
		// Subtract the oldest value being overwritten
		b.sum -= b.buf[b.idx]
	}
	b.buf[b.idx] = price
	b.sum += price
	b.idx = (b.idx + 1) % b.period
	b.count++
}

// Value returns the middle band (the SMA).
func (b *Boll) Value() float64 {
	if b.count < b.period {
		return 0
	}
	return b.sum / float64(b.period)
}

func (b *Boll) Ready() bool { return b.count >= b.period }

// Bands returns (upper, middle, lower). The standard deviation is the
// sample deviation (n−1 divisor); a constant window collapses all three
// bands to the same value.
func (b *Boll) Bands() (upper, middle, lower float64) {
	if b.count < b.period {
		return 0, 0, 0
	}
	middle = b.sum / float64(b.period)

	variance := 0.0
	for _, v := range b.buf {
		d := v - middle
		variance += d * d
	}
	variance /= float64(b.period - 1)

	dev := b.k * math.Sqrt(variance)
	return middle + dev, middle, middle - dev
}
