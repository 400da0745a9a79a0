// Package risk turns capital, entry and stop into a bounded position size
// and guards the account against drawdown.
package risk

import (
	"fmt"
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// Sizer sizes positions from initial capital only, so profits made during a
// run never grow the next position.
type Sizer struct {
	params  types.RiskParameters
	tracker *DrawdownTracker
}

// NewSizer creates a sizer whose drawdown guard starts at initialCapital.
func NewSizer(params types.RiskParameters, initialCapital float64) *Sizer {
	return &Sizer{
		params:  params,
		tracker: NewDrawdownTracker(initialCapital, params.MaxDrawdown),
	}
}

// Params returns the risk limits in use.
func (s *Sizer) Params() types.RiskParameters {
	return s.params
}

// CanOpen reports whether a new entry is allowed, with the reason when not.
func (s *Sizer) CanOpen(direction types.Direction, openCount int, currentCapital float64) (bool, string) {
	if !direction.IsEntry() {
		return false, fmt.Sprintf("%s is not an entry", direction)
	}

	if openCount >= s.params.MaxConcurrentPositions {
		return false, fmt.Sprintf("max concurrent positions reached (%d/%d)", openCount, s.params.MaxConcurrentPositions)
	}

	if currentCapital <= 0 {
		return false, fmt.Sprintf("no capital available (%.2f)", currentCapital)
	}

	return true, ""
}

// PositionSize returns the number of units to trade:
//
//	risk_amount    = initial * max_risk_per_trade
//	price_risk_pct = |entry - stop| / entry, or the default when stop is unset
//	price_risk_pct = max(price_risk_pct, min_price_risk_pct)
//	value          = initial * min(risk_amount / (initial * price_risk_pct), max_position_size_fraction)
//	value          = min(value, initial * absolute_position_cap)
//	size           = value / entry
//
// Non-positive capital or entry gives 0.
func (s *Sizer) PositionSize(initialCapital, entryPrice, stopLoss float64) float64 {
	if initialCapital <= 0 || entryPrice <= 0 {
		return 0
	}

	riskAmount := initialCapital * s.params.MaxRiskPerTrade

	priceRiskPct := s.params.DefaultPriceRiskPct
	if stopLoss > 0 {
		priceRiskPct = math.Abs(entryPrice-stopLoss) / entryPrice
	}

	priceRiskPct = math.Max(priceRiskPct, s.params.MinPriceRiskPct)

	fraction := math.Min(riskAmount/(initialCapital*priceRiskPct), s.params.MaxPositionSizeFraction)
	value := math.Min(initialCapital*fraction, initialCapital*s.params.AbsolutePositionCap)

	return value / entryPrice
}

// UpdateBalance feeds the drawdown guard. It returns true when the caller
// must liquidate.
func (s *Sizer) UpdateBalance(balance float64) bool {
	_, breached := s.tracker.Update(balance)

	return breached
}

// Drawdown returns the current drawdown fraction.
func (s *Sizer) Drawdown() float64 {
	return s.tracker.Drawdown()
}

// Peak returns the balance high-water mark.
func (s *Sizer) Peak() float64 {
	return s.tracker.Peak()
}
