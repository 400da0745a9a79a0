package indicator

import (
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
)

// TrueRanges returns the true range of every bar after the first.
func TrueRanges(highs, lows, closes []float64) ([]float64, error) {
	if len(highs) != len(lows) || len(lows) != len(closes) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"high, low and close series differ in length: %d, %d, %d", len(highs), len(lows), len(closes))
	}

	if len(closes) < 2 {
		return nil, requireLength("TrueRange", 2, len(closes))
	}

	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = math.Max(highs[i]-lows[i], math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
	}

	return out, nil
}

// ATR is the average true range, the EMA of true ranges. It needs period+1 bars.
func ATR(highs, lows, closes []float64, period int) (float64, error) {
	if err := checkPeriod("ATR", period); err != nil {
		return 0, err
	}

	if err := requireLength("ATR", period+1, len(closes)); err != nil {
		return 0, err
	}

	ranges, err := TrueRanges(highs, lows, closes)
	if err != nil {
		return 0, err
	}

	return EMA(ranges, period)
}
