// Package indicator holds the pure technical indicator functions used by
// the strategies. Every function reads a series oldest-first and evaluates
// at its last element; none of them keep state between calls.
package indicator

import (
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
)

// Closes extracts close prices.
func Closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}

	return out
}

// Highs extracts high prices.
func Highs(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}

	return out
}

// Lows extracts low prices.
func Lows(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}

	return out
}

// Volumes extracts volumes.
func Volumes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}

	return out
}

// Range returns the lowest and highest value in values.
func Range(values []float64) (lowest, highest float64) {
	if len(values) == 0 {
		return 0, 0
	}

	lowest, highest = values[0], values[0]
	for _, v := range values[1:] {
		if v < lowest {
			lowest = v
		}

		if v > highest {
			highest = v
		}
	}

	return lowest, highest
}

// Mean is the arithmetic mean, 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func checkPeriod(name string, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be positive, got %d", name, period)
	}

	return nil
}

func requireLength(name string, required, actual int) error {
	if actual < required {
		return errors.NewInsufficientDataErrorf(required, actual, "", "%s needs %d values, got %d", name, required, actual)
	}

	return nil
}

func tail(values []float64, n int) []float64 {
	return values[len(values)-n:]
}

func finite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Newf(errors.ErrCodeIndicatorCalculation, "%s produced a non-finite value", name)
		}
	}

	return nil
}
