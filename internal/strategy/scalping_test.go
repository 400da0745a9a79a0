package strategy

import (
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/stretchr/testify/suite"
)

type ScalpingTestSuite struct {
	suite.Suite
	strategy Strategy
}

func TestScalpingSuite(t *testing.T) {
	suite.Run(t, new(ScalpingTestSuite))
}

func (suite *ScalpingTestSuite) SetupTest() {
	s, err := NewScalping(nil)
	suite.Require().NoError(err)
	suite.strategy = s
}

// breakout builds a flat tape whose last bar moves by move on triple volume.
func breakout(move float64) []types.Bar {
	bars := barsFromCloses(flat(21, 100), 0.05)
	last := &bars[len(bars)-1]
	last.Close = 100 + move
	last.Open = 100
	last.High = max(last.Open, last.Close) + 0.05
	last.Low = min(last.Open, last.Close) - 0.05
	last.Volume = 3000

	return bars
}

func (suite *ScalpingTestSuite) TestLookback() {
	suite.Equal(20, suite.strategy.RequiredLookback())
}

func (suite *ScalpingTestSuite) TestLongOnUpsideBreakout() {
	bars := breakout(0.1)

	signal, err := suite.strategy.GenerateSignal(bars, 20)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionLong, signal.Direction)
	suite.Equal(11.0, signal.Indicators["long_score"])
	suite.Equal(3.0, signal.Indicators["short_score"])
	suite.InDelta(1.0, signal.Strength, 1e-9)
	suite.InDelta(100.1*0.997, signal.StopLoss, 1e-9)
	suite.InDelta(3.0, signal.Indicators["volume_ratio"], 1e-9)
}

func (suite *ScalpingTestSuite) TestShortOnDownsideBreak() {
	bars := breakout(-0.3)

	signal, err := suite.strategy.GenerateSignal(bars, 20)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionShort, signal.Direction)
	suite.Equal(7.0, signal.Indicators["short_score"])
	suite.Equal(5.0, signal.Indicators["long_score"])
	suite.InDelta(7.0/8.0, signal.Strength, 1e-9)
	suite.InDelta(99.7*1.003, signal.StopLoss, 1e-9)
}

func (suite *ScalpingTestSuite) TestExits() {
	at := testStart.Add(20 * time.Minute)

	tests := []struct {
		name      string
		move      float64
		held      time.Duration
		direction types.Direction
		reason    string
	}{
		{name: "take profit", move: 0.6, held: time.Minute, direction: types.DirectionCloseLong, reason: "take profit"},
		{name: "stop loss", move: -0.4, held: time.Minute, direction: types.DirectionCloseLong, reason: "stop loss"},
		{name: "max hold", move: 0.1, held: 301 * time.Second, direction: types.DirectionCloseLong, reason: "max hold"},
		{name: "hold", move: 0.1, held: time.Minute, direction: types.DirectionNone, reason: "hold"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			bars := breakout(tc.move)
			position := openPosition(types.SideLong, 100, at.Add(-tc.held))

			signal, err := suite.strategy.EvaluatePosition(bars, 20, position)
			suite.Require().NoError(err)
			suite.Equal(tc.direction, signal.Direction)
			suite.Contains(signal.Reason, tc.reason)
		})
	}
}
