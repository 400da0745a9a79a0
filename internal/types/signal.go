package types

import (
	"math"
	"time"
)

type Direction string

const (
	// DirectionLong opens a long position
	DirectionLong Direction = "LONG"
	// DirectionShort opens a short position
	DirectionShort Direction = "SHORT"
	// DirectionCloseLong closes every open long position
	DirectionCloseLong Direction = "CLOSE_LONG"
	// DirectionCloseShort closes every open short position
	DirectionCloseShort Direction = "CLOSE_SHORT"
	// DirectionCloseAll closes every open position
	DirectionCloseAll Direction = "CLOSE_ALL"
	// DirectionNone takes no action
	DirectionNone Direction = "NONE"
)

// IsEntry reports whether the direction opens a position.
func (d Direction) IsEntry() bool {
	return d == DirectionLong || d == DirectionShort
}

// IsExit reports whether the direction closes positions.
func (d Direction) IsExit() bool {
	return d == DirectionCloseLong || d == DirectionCloseShort || d == DirectionCloseAll
}

// Side maps an entry or side-specific exit to its position side.
// ok is false for CLOSE_ALL and NONE.
func (d Direction) Side() (side Side, ok bool) {
	switch d {
	case DirectionLong, DirectionCloseLong:
		return SideLong, true
	case DirectionShort, DirectionCloseShort:
		return SideShort, true
	default:
		return "", false
	}
}

// IndicatorSet holds named indicator readings for one evaluation.
type IndicatorSet map[string]float64

// Signal is a strategy's recommendation for the current bar.
// It is created fresh on every evaluation and never mutated afterwards.
type Signal struct {
	// Direction is the recommended action
	Direction Direction `yaml:"direction" json:"direction"`
	// Strength is the confidence in [0, 1]
	Strength float64 `yaml:"strength" json:"strength"`
	// Reason is diagnostic text
	Reason string `yaml:"reason" json:"reason"`
	// Price is the price at evaluation time
	Price float64 `yaml:"price" json:"price"`
	// Symbol is the instrument the signal refers to
	Symbol string `yaml:"symbol" json:"symbol"`
	// Time is the timestamp of the bar that produced the signal
	Time time.Time `yaml:"time" json:"time"`
	// StopLoss is the suggested stop price; 0 means unset
	StopLoss float64 `yaml:"stop_loss" json:"stop_loss"`
	// Indicators are the readings the decision was based on
	Indicators IndicatorSet `yaml:"indicators,omitempty" json:"indicators,omitempty"`
}

// NewSignal builds a signal for bar, clamping strength into [0, 1].
func NewSignal(direction Direction, strength float64, reason string, bar Bar, stopLoss float64, indicators IndicatorSet) Signal {
	if math.IsNaN(strength) {
		strength = 0
	}

	return Signal{
		Direction:  direction,
		Strength:   math.Max(0, math.Min(1, strength)),
		Reason:     reason,
		Price:      bar.Close,
		Symbol:     bar.Symbol,
		Time:       bar.Time,
		StopLoss:   stopLoss,
		Indicators: indicators,
	}
}

// NewNoneSignal returns a no-action signal for bar.
func NewNoneSignal(reason string, bar Bar) Signal {
	return Signal{
		Direction:  DirectionNone,
		Strength:   0,
		Reason:     reason,
		Price:      bar.Close,
		Symbol:     bar.Symbol,
		Time:       bar.Time,
		StopLoss:   0,
		Indicators: nil,
	}
}

// IsNone reports whether the signal asks for no action.
func (s Signal) IsNone() bool {
	return s.Direction == DirectionNone || s.Direction == ""
}
