package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestDirectionClassification() {
	suite.True(DirectionLong.IsEntry())
	suite.True(DirectionShort.IsEntry())
	suite.False(DirectionCloseAll.IsEntry())

	suite.True(DirectionCloseLong.IsExit())
	suite.True(DirectionCloseShort.IsExit())
	suite.True(DirectionCloseAll.IsExit())
	suite.False(DirectionNone.IsExit())

	side, ok := DirectionCloseShort.Side()
	suite.True(ok)
	suite.Equal(SideShort, side)

	side, ok = DirectionLong.Side()
	suite.True(ok)
	suite.Equal(SideLong, side)

	_, ok = DirectionCloseAll.Side()
	suite.False(ok)
}

func (suite *SignalTestSuite) TestNewSignalClampsStrength() {
	bar := validBar()

	tests := []struct {
		name     string
		strength float64
		expected float64
	}{
		{name: "in range", strength: 0.4, expected: 0.4},
		{name: "above one", strength: 1.7, expected: 1},
		{name: "negative", strength: -0.2, expected: 0},
		{name: "nan", strength: math.NaN(), expected: 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			signal := NewSignal(DirectionLong, tc.strength, "test", bar, 99, nil)
			suite.InDelta(tc.expected, signal.Strength, 1e-12)
		})
	}
}

func (suite *SignalTestSuite) TestNewSignalCopiesBar() {
	bar := validBar()
	signal := NewSignal(DirectionShort, 0.5, "overbought", bar, 104, IndicatorSet{"rsi": 72})

	suite.Equal(bar.Close, signal.Price)
	suite.Equal(bar.Symbol, signal.Symbol)
	suite.Equal(bar.Time, signal.Time)
	suite.Equal(104.0, signal.StopLoss)
	suite.Equal(72.0, signal.Indicators["rsi"])
	suite.False(signal.IsNone())
}

func (suite *SignalTestSuite) TestNoneSignal() {
	signal := NewNoneSignal("warming up", validBar())
	suite.True(signal.IsNone())
	suite.Zero(signal.Strength)
	suite.Equal("warming up", signal.Reason)

	suite.True(Signal{}.IsNone())
}
