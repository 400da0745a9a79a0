package strategy

import (
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/stretchr/testify/suite"
)

type RSIScalpingTestSuite struct {
	suite.Suite
	strategy Strategy
}

func TestRSIScalpingSuite(t *testing.T) {
	suite.Run(t, new(RSIScalpingTestSuite))
}

func (suite *RSIScalpingTestSuite) SetupTest() {
	s, err := NewRSIScalping(nil)
	suite.Require().NoError(err)
	suite.strategy = s
}

func (suite *RSIScalpingTestSuite) TestFirstSignalSeedsTracker() {
	bars := barsFromCloses(linear(30, 100, -0.5), 0.1)

	first, err := suite.strategy.GenerateSignal(bars, 28)
	suite.Require().NoError(err)
	suite.True(first.IsNone())
	suite.Contains(first.Reason, "initialising")

	second, err := suite.strategy.GenerateSignal(bars, 29)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionLong, second.Direction)
	suite.InDelta(1.0, second.Strength, 1e-9)
	suite.InDelta(bars[29].Close*0.99, second.StopLoss, 1e-9)
	suite.Contains(second.Indicators, "rsi_prev")

	suite.strategy.Reset()

	again, err := suite.strategy.GenerateSignal(bars, 29)
	suite.Require().NoError(err)
	suite.True(again.IsNone())
}

func (suite *RSIScalpingTestSuite) TestShortWhenOverbought() {
	bars := barsFromCloses(linear(30, 100, 0.5), 0.1)

	_, err := suite.strategy.GenerateSignal(bars, 28)
	suite.Require().NoError(err)

	signal, err := suite.strategy.GenerateSignal(bars, 29)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionShort, signal.Direction)
	suite.InDelta(bars[29].Close*1.01, signal.StopLoss, 1e-9)
}

func (suite *RSIScalpingTestSuite) TestNeutralIsNone() {
	bars := barsFromCloses(alternating(30, 100, 0.1), 0.05)

	_, err := suite.strategy.GenerateSignal(bars, 28)
	suite.Require().NoError(err)

	signal, err := suite.strategy.GenerateSignal(bars, 29)
	suite.Require().NoError(err)
	suite.True(signal.IsNone())
}

func (suite *RSIScalpingTestSuite) TestExits() {
	ranging := barsFromCloses(alternating(30, 100, 0.1), 0.05)
	falling := barsFromCloses(linear(30, 100, -0.1), 0.05)
	at := testStart

	tests := []struct {
		name      string
		bars      []types.Bar
		position  types.Position
		direction types.Direction
		reason    string
	}{
		{name: "take profit", bars: falling, position: openPosition(types.SideShort, 99.0, at), direction: types.DirectionCloseShort, reason: "take profit"},
		{name: "stop loss", bars: falling, position: openPosition(types.SideLong, 98.2, at), direction: types.DirectionCloseLong, reason: "stop loss"},
		{name: "long back to neutral", bars: ranging, position: openPosition(types.SideLong, 100.1, at), direction: types.DirectionCloseLong, reason: "rsi back"},
		{name: "short back to neutral", bars: ranging, position: openPosition(types.SideShort, 100.1, at), direction: types.DirectionCloseShort, reason: "rsi back"},
		{name: "long still oversold", bars: falling, position: openPosition(types.SideLong, 97.2, at.Add(time.Minute)), direction: types.DirectionNone, reason: "hold"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			signal, err := suite.strategy.EvaluatePosition(tc.bars, len(tc.bars)-1, tc.position)
			suite.Require().NoError(err)
			suite.Equal(tc.direction, signal.Direction)
			suite.Contains(signal.Reason, tc.reason)
		})
	}
}
