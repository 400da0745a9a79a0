package indicator

import (
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func trendingSeries(n int) (highs, lows, closes []float64) {
	for i := 0; i < n; i++ {
		highs = append(highs, 10+float64(i))
		lows = append(lows, 8+float64(i))
		closes = append(closes, 9+float64(i))
	}

	return highs, lows, closes
}

func (suite *IndicatorTestSuite) TestSMA() {
	value, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	suite.Require().NoError(err)
	suite.InDelta(4.0, value, 1e-12)

	_, err = SMA([]float64{1, 2}, 3)
	suite.True(errors.IsInsufficientDataError(err))

	_, err = SMA([]float64{1, 2}, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *IndicatorTestSuite) TestEMASeededWithSMA() {
	series, err := EMASeries([]float64{1, 2, 3, 4, 5}, 3)
	suite.Require().NoError(err)
	suite.InDeltaSlice([]float64{2, 3, 4}, series, 1e-12)

	value, err := EMA([]float64{1, 2, 3, 4, 5}, 3)
	suite.Require().NoError(err)
	suite.InDelta(4.0, value, 1e-12)

	_, err = EMA([]float64{1}, 2)
	suite.True(errors.IsDataError(err))
}

func (suite *IndicatorTestSuite) TestRSI() {
	tests := []struct {
		name     string
		values   []float64
		period   int
		expected float64
	}{
		{name: "alternating uses wilder smoothing", values: []float64{1, 2, 1, 2, 1}, period: 2, expected: 37.5},
		{name: "only gains", values: []float64{1, 2, 3, 4, 5}, period: 3, expected: 100},
		{name: "only losses", values: []float64{5, 4, 3, 2, 1}, period: 3, expected: 0},
		{name: "flat", values: []float64{3, 3, 3, 3}, period: 3, expected: 50},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			value, err := RSI(tc.values, tc.period)
			suite.Require().NoError(err)
			suite.InDelta(tc.expected, value, 1e-9)
		})
	}

	_, err := RSI([]float64{1, 2, 3}, 3)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestBollingerBands() {
	bands, err := BollingerBands([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	suite.Require().NoError(err)
	suite.InDelta(5.0, bands.Middle, 1e-12)
	suite.InDelta(9.0, bands.Upper, 1e-12)
	suite.InDelta(1.0, bands.Lower, 1e-12)
	suite.InDelta(1.6, bands.Width, 1e-12)
	suite.InDelta(0.5, bands.Position(5), 1e-12)
	suite.InDelta(0.0, bands.Position(1), 1e-12)

	flat, err := BollingerBands([]float64{3, 3, 3}, 3, 2)
	suite.Require().NoError(err)
	suite.InDelta(0.5, flat.Position(3.2), 1e-12)
}

func (suite *IndicatorTestSuite) TestATR() {
	highs := []float64{11, 11, 11, 11, 11}
	lows := []float64{9, 9, 9, 9, 9}
	closes := []float64{10, 10, 10, 10, 10}

	value, err := ATR(highs, lows, closes, 3)
	suite.Require().NoError(err)
	suite.InDelta(2.0, value, 1e-12)

	_, err = ATR(highs[:2], lows[:2], closes[:2], 3)
	suite.True(errors.IsInsufficientDataError(err))

	_, err = TrueRanges(highs, lows[:3], closes)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *IndicatorTestSuite) TestADXTrending() {
	highs, lows, closes := trendingSeries(30)

	result, err := ADX(highs, lows, closes, 14)
	suite.Require().NoError(err)
	suite.InDelta(50.0, result.PlusDI, 1e-9)
	suite.InDelta(0.0, result.MinusDI, 1e-9)
	suite.InDelta(100.0, result.ADX, 1e-9)
}

func (suite *IndicatorTestSuite) TestADXFlatDoesNotDivideByZero() {
	flat := make([]float64, 28)
	for i := range flat {
		flat[i] = 10
	}

	result, err := ADX(flat, flat, flat, 14)
	suite.Require().NoError(err)
	suite.Zero(result.ADX)
	suite.Zero(result.PlusDI)
	suite.Zero(result.MinusDI)

	_, err = ADX(flat[:27], flat[:27], flat[:27], 14)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *IndicatorTestSuite) TestLinearRegressionSlope() {
	suite.InDelta(2.0, LinearRegressionSlope([]float64{1, 3, 5, 7}), 1e-12)
	suite.InDelta(0.0, LinearRegressionSlope([]float64{4, 4, 4}), 1e-12)
	suite.Zero(LinearRegressionSlope([]float64{1}))
}

func (suite *IndicatorTestSuite) TestSeriesExtraction() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []types.Bar{
		{Symbol: "BTC", Time: start, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Symbol: "BTC", Time: start.Add(time.Minute), Open: 11, High: 13, Low: 10, Close: 12, Volume: 150},
	}

	suite.Equal([]float64{11, 12}, Closes(bars))
	suite.Equal([]float64{12, 13}, Highs(bars))
	suite.Equal([]float64{9, 10}, Lows(bars))
	suite.Equal([]float64{100, 150}, Volumes(bars))

	lo, hi := Range([]float64{3, 1, 4, 1, 5})
	suite.Equal(1.0, lo)
	suite.Equal(5.0, hi)
	suite.Zero(Mean(nil))
	suite.InDelta(2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func (suite *IndicatorTestSuite) TestNonFiniteInputIsStrategyError() {
	_, err := EMA([]float64{1, 2, 3, 4}, 2)
	suite.Require().NoError(err)

	inf := 1e308
	_, err = BollingerBands([]float64{inf, -inf, inf, -inf}, 4, 2)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
	suite.True(errors.IsStrategyError(err))
}
