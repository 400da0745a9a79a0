package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func closedTrade(pnl float64, side types.Side, reason string, held time.Duration) types.Position {
	entry := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return types.Position{
		ID:          "pos",
		Symbol:      "BTC",
		Side:        side,
		EntryPrice:  100,
		EntryTime:   entry,
		Size:        1,
		Notional:    100,
		StopLoss:    0,
		Status:      types.PositionStatusClosed,
		ExitPrice:   100 + pnl,
		ExitTime:    entry.Add(held),
		RealizedPnL: pnl,
		ExitReason:  reason,
		Metadata:    nil,
	}
}

func (suite *MetricsTestSuite) TestWorkedExample() {
	closed := []types.Position{
		closedTrade(50, types.SideLong, "take profit", time.Minute),
		closedTrade(-20, types.SideLong, "stop loss", time.Minute),
		closedTrade(30, types.SideShort, "take profit", time.Minute),
	}

	metrics := ComputeMetrics(10000, closed)

	suite.Equal([]float64{10000, 10050, 10030, 10060}, metrics.EquityCurve)
	suite.InDelta(2.0/3.0, metrics.WinRate, 1e-9)
	suite.InDelta(60, metrics.TotalPnL, 1e-9)
	suite.InDelta(20.0/10050.0, metrics.MaxDrawdown, 1e-12)
	suite.InDelta(0.00199, metrics.MaxDrawdown, 1e-5)
	suite.Require().Len(metrics.DrawdownCurve, 4)
	suite.Equal(0.0, metrics.DrawdownCurve[0])
	suite.Equal(0.0, metrics.DrawdownCurve[3])
	suite.InDelta(4, metrics.ProfitFactor, 1e-9)
	suite.InDelta(10060, metrics.FinalCapital, 1e-9)
	suite.InDelta(0.6, metrics.ReturnPercentage, 1e-9)
	suite.InDelta(20/math.Sqrt(2600.0/3.0), metrics.SharpeRatio, 1e-9)
}

func (suite *MetricsTestSuite) TestEdgeCases() {
	testCases := []struct {
		name      string
		pnls      []float64
		sharpe    float64
		infinite  bool
		maxDD     float64
		breakeven int
	}{
		{name: "no trades", pnls: nil},
		{name: "single trade has no sharpe", pnls: []float64{10}, infinite: true},
		{name: "identical trades have no sharpe", pnls: []float64{5, 5, 5}, infinite: true},
		{name: "only losses", pnls: []float64{-10, -10}, maxDD: 20.0 / 10000.0},
		{name: "breakeven", pnls: []float64{0, 0}, breakeven: 2},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			closed := make([]types.Position, 0, len(tc.pnls))
			for _, pnl := range tc.pnls {
				closed = append(closed, closedTrade(pnl, types.SideLong, "signal", time.Minute))
			}

			metrics := ComputeMetrics(10000, closed)
			suite.Equal(tc.sharpe, metrics.SharpeRatio)
			suite.Equal(tc.infinite, metrics.HasInfiniteProfitFactor())
			suite.InDelta(tc.maxDD, metrics.MaxDrawdown, 1e-12)
			suite.Equal(tc.breakeven, metrics.BreakevenTrades)
			suite.Len(metrics.EquityCurve, len(tc.pnls)+1)
			suite.Equal(10000.0, metrics.EquityCurve[0])

			for _, dd := range metrics.DrawdownCurve {
				suite.GreaterOrEqual(dd, 0.0)
			}
		})
	}
}

func (suite *MetricsTestSuite) TestAnalyze() {
	closed := []types.Position{
		closedTrade(50, types.SideLong, "take profit", 2*time.Minute),
		closedTrade(-20, types.SideLong, "stop loss", time.Minute),
		closedTrade(-40, types.SideShort, "stop loss", 3*time.Minute),
	}

	analysis := Analyze(closed)
	suite.InDelta(50, analysis.AvgWin, 1e-9)
	suite.InDelta(30, analysis.AvgLoss, 1e-9)
	suite.InDelta(50, analysis.LargestWin, 1e-9)
	suite.InDelta(40, analysis.LargestLoss, 1e-9)
	suite.Equal(2, analysis.LongTrades)
	suite.Equal(1, analysis.ShortTrades)
	suite.InDelta(120, analysis.AvgHoldingSeconds, 1e-9)
	suite.Equal(map[string]int{"take profit": 1, "stop loss": 2}, analysis.ExitReasons)
}
