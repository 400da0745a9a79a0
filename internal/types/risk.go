package types

import (
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
)

// RiskParameters bound position sizing and account drawdown.
type RiskParameters struct {
	// MaxRiskPerTrade is the fraction of initial capital risked per trade
	MaxRiskPerTrade float64 `yaml:"max_risk_per_trade" json:"max_risk_per_trade" jsonschema:"description=Fraction of initial capital risked per trade,default=0.02" validate:"gt=0,lte=1"`
	// MaxPositionSizeFraction caps position value as a fraction of initial capital
	MaxPositionSizeFraction float64 `yaml:"max_position_size_fraction" json:"max_position_size_fraction" jsonschema:"description=Position value cap as a fraction of initial capital,default=0.1" validate:"gt=0,lte=1"`
	// MaxConcurrentPositions limits how many positions may be open at once
	MaxConcurrentPositions int `yaml:"max_concurrent_positions" json:"max_concurrent_positions" jsonschema:"description=Maximum simultaneously open positions,default=5" validate:"gte=1"`
	// MaxDrawdown triggers forced liquidation when reached
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown" jsonschema:"description=Drawdown fraction that forces liquidation,default=0.25" validate:"gt=0,lte=1"`
	// MinPriceRiskPct floors the stop distance used for sizing
	MinPriceRiskPct float64 `yaml:"min_price_risk_pct" json:"min_price_risk_pct" jsonschema:"description=Floor for the stop distance used in sizing,default=0.005" validate:"gt=0,lte=1"`
	// DefaultPriceRiskPct is the stop distance assumed when no stop is given
	DefaultPriceRiskPct float64 `yaml:"default_price_risk_pct" json:"default_price_risk_pct" jsonschema:"description=Stop distance assumed when the signal has no stop,default=0.01" validate:"gt=0,lte=1"`
	// AbsolutePositionCap is the hard ceiling on position value as a fraction of initial capital
	AbsolutePositionCap float64 `yaml:"absolute_position_cap" json:"absolute_position_cap" jsonschema:"description=Hard ceiling on position value as a fraction of initial capital,default=0.2" validate:"gt=0,lte=1"`
}

// DefaultRiskParameters returns the stock risk limits.
func DefaultRiskParameters() RiskParameters {
	return RiskParameters{
		MaxRiskPerTrade:         0.02,
		MaxPositionSizeFraction: 0.1,
		MaxConcurrentPositions:  5,
		MaxDrawdown:             0.25,
		MinPriceRiskPct:         0.005,
		DefaultPriceRiskPct:     0.01,
		AbsolutePositionCap:     0.20,
	}
}

// Validate checks every limit is within range.
func (r RiskParameters) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid risk parameters", err)
	}

	return nil
}
