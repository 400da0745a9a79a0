package types

// CapitalState tracks account capital for one run.
// PeakCapital never decreases.
type CapitalState struct {
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	CurrentCapital float64 `yaml:"current_capital" json:"current_capital"`
	PeakCapital    float64 `yaml:"peak_capital" json:"peak_capital"`
	RealizedPnL    float64 `yaml:"realized_pnl" json:"realized_pnl"`
	UnrealizedPnL  float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
}

// NewCapitalState starts a run at initial.
func NewCapitalState(initial float64) CapitalState {
	return CapitalState{
		InitialCapital: initial,
		CurrentCapital: initial,
		PeakCapital:    initial,
		RealizedPnL:    0,
		UnrealizedPnL:  0,
	}
}

// Update recomputes current capital from the realized and unrealized totals
// and raises the peak when needed.
func (c *CapitalState) Update(realized, unrealized float64) {
	c.RealizedPnL = realized
	c.UnrealizedPnL = unrealized
	c.CurrentCapital = c.InitialCapital + realized + unrealized

	if c.CurrentCapital > c.PeakCapital {
		c.PeakCapital = c.CurrentCapital
	}
}

// Drawdown is the fractional decline of current capital from the peak.
func (c CapitalState) Drawdown() float64 {
	if c.PeakCapital <= 0 || c.CurrentCapital >= c.PeakCapital {
		return 0
	}

	return (c.PeakCapital - c.CurrentCapital) / c.PeakCapital
}

// ReturnPercentage is the percent change from initial capital.
func (c CapitalState) ReturnPercentage() float64 {
	if c.InitialCapital == 0 {
		return 0
	}

	return (c.CurrentCapital - c.InitialCapital) / c.InitialCapital * 100
}

// TotalPnL is realized plus unrealized P&L.
func (c CapitalState) TotalPnL() float64 {
	return c.RealizedPnL + c.UnrealizedPnL
}
