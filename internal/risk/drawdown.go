package risk

// DrawdownTracker keeps a balance high-water mark and measures the decline from it.
type DrawdownTracker struct {
	peak      float64
	threshold float64
	current   float64
}

// NewDrawdownTracker starts tracking from initial. A threshold of 0 never breaches.
func NewDrawdownTracker(initial, threshold float64) *DrawdownTracker {
	return &DrawdownTracker{
		peak:      initial,
		threshold: threshold,
		current:   initial,
	}
}

// Update records balance, raising the peak when needed, and reports the
// drawdown and whether it reached the threshold.
func (d *DrawdownTracker) Update(balance float64) (drawdown float64, breached bool) {
	d.current = balance
	if balance > d.peak {
		d.peak = balance
	}

	drawdown = d.Drawdown()

	return drawdown, d.threshold > 0 && drawdown >= d.threshold
}

// Drawdown is (peak - current) / peak, never negative. A non-positive peak reads 0.
func (d *DrawdownTracker) Drawdown() float64 {
	if d.peak <= 0 || d.current >= d.peak {
		return 0
	}

	return (d.peak - d.current) / d.peak
}

// Peak returns the high-water mark.
func (d *DrawdownTracker) Peak() float64 {
	return d.peak
}

// Threshold returns the breach level.
func (d *DrawdownTracker) Threshold() float64 {
	return d.threshold
}

// Reset starts over from balance.
func (d *DrawdownTracker) Reset(balance float64) {
	d.peak = balance
	d.current = balance
}
