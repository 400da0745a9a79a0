package strategy

import (
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/stretchr/testify/suite"
)

type BBRSITestSuite struct {
	suite.Suite
	strategy Strategy
}

func TestBBRSISuite(t *testing.T) {
	suite.Run(t, new(BBRSITestSuite))
}

func (suite *BBRSITestSuite) SetupTest() {
	s, err := NewBBRSI(nil)
	suite.Require().NoError(err)
	suite.strategy = s
}

// a steady decline ending with a small bounce: oversold, near the lower band
func (suite *BBRSITestSuite) bouncingDecline() []types.Bar {
	closes := linear(39, 100, -0.5)
	closes = append(closes, closes[len(closes)-1]+0.1)

	return barsFromCloses(closes, 0.2)
}

func (suite *BBRSITestSuite) fadingRally() []types.Bar {
	closes := linear(39, 100, 0.5)
	closes = append(closes, closes[len(closes)-1]-0.1)

	return barsFromCloses(closes, 0.2)
}

func (suite *BBRSITestSuite) TestRequiredLookback() {
	suite.Equal(27, suite.strategy.RequiredLookback())
}

func (suite *BBRSITestSuite) TestLongOnOversoldBounce() {
	bars := suite.bouncingDecline()
	last := len(bars) - 1

	signal, err := suite.strategy.GenerateSignal(bars, last)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionLong, signal.Direction)
	suite.GreaterOrEqual(signal.Strength, 3.0/8.0)
	suite.InDelta(bars[last].Close*0.985, signal.StopLoss, 1e-9)
	suite.Less(signal.Indicators["bb_position"], 0.3)
	suite.Greater(signal.Indicators["long_score"], signal.Indicators["short_score"])
}

func (suite *BBRSITestSuite) TestShortOnOverboughtFade() {
	bars := suite.fadingRally()
	last := len(bars) - 1

	signal, err := suite.strategy.GenerateSignal(bars, last)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionShort, signal.Direction)
	suite.InDelta(bars[last].Close*1.015, signal.StopLoss, 1e-9)
	suite.Greater(signal.Indicators["bb_position"], 0.7)
}

func (suite *BBRSITestSuite) TestVolatilitySqueezeIsNone() {
	bars := barsFromCloses(flat(40, 100), 0.01)

	signal, err := suite.strategy.GenerateSignal(bars, len(bars)-1)
	suite.Require().NoError(err)
	suite.True(signal.IsNone())
	suite.Contains(signal.Reason, "volatility")
}

func (suite *BBRSITestSuite) TestIsDeterministic() {
	bars := suite.bouncingDecline()

	first, err := suite.strategy.GenerateSignal(bars, len(bars)-1)
	suite.Require().NoError(err)

	second, err := suite.strategy.GenerateSignal(bars, len(bars)-1)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *BBRSITestSuite) TestExitPriority() {
	ranging := barsFromCloses(alternating(40, 100, 0.1), 0.05)
	last := len(ranging) - 1
	now := ranging[last].Time

	tests := []struct {
		name      string
		bars      []types.Bar
		position  types.Position
		direction types.Direction
		reason    string
	}{
		{
			name:      "extreme rsi closes everything",
			bars:      suite.bouncingDecline(),
			position:  openPosition(types.SideLong, 80.6, suite.bouncingDecline()[39].Time.Add(-time.Minute)),
			direction: types.DirectionCloseAll,
			reason:    "extreme rsi",
		},
		{
			name:      "profit target",
			bars:      ranging,
			position:  openPosition(types.SideLong, 99.9, now.Add(-time.Minute)),
			direction: types.DirectionCloseLong,
			reason:    "take profit",
		},
		{
			name:      "stop loss",
			bars:      ranging,
			position:  openPosition(types.SideLong, 101.7, now.Add(-time.Minute)),
			direction: types.DirectionCloseLong,
			reason:    "stop loss",
		},
		{
			name:      "max hold beats mean reversion",
			bars:      ranging,
			position:  openPosition(types.SideShort, 100.1, now.Add(-200*time.Second)),
			direction: types.DirectionCloseShort,
			reason:    "max hold",
		},
		{
			name:      "middle band",
			bars:      ranging,
			position:  openPosition(types.SideLong, 100.1, now.Add(-time.Minute)),
			direction: types.DirectionCloseLong,
			reason:    "middle band",
		},
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

func (suite *BBRSITestSuite) TestExitDuringWarmUpUsesPriceRules() {
	bars := barsFromCloses(linear(5, 100, 0.5), 0.1)
	position := openPosition(types.SideLong, 100, bars[0].Time)

	signal, err := suite.strategy.EvaluatePosition(bars, 4, position)
	suite.Require().NoError(err)
	suite.Equal(types.DirectionCloseLong, signal.Direction)
	suite.Contains(signal.Reason, "take profit")
}
