package backtest

import (
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/ledger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/shopspring/decimal"
)

// ComputeMetrics derives performance from closed positions in close order.
// The equity curve has one sample per closed trade, starting at
// initialCapital.
func ComputeMetrics(initialCapital float64, closed []types.Position) types.PerformanceMetrics {
	metrics := types.PerformanceMetrics{
		TotalTrades:      len(closed),
		WinningTrades:    0,
		LosingTrades:     0,
		BreakevenTrades:  0,
		WinRate:          0,
		GrossProfit:      0,
		GrossLoss:        0,
		TotalPnL:         0,
		ProfitFactor:     0,
		MaxDrawdown:      0,
		SharpeRatio:      0,
		EquityCurve:      make([]float64, 0, len(closed)+1),
		DrawdownCurve:    make([]float64, 0, len(closed)+1),
		FinalCapital:     initialCapital,
		ReturnPercentage: 0,
	}

	equity := decimal.NewFromFloat(initialCapital)
	profit, loss := decimal.Zero, decimal.Zero
	pnls := make([]float64, 0, len(closed))

	metrics.EquityCurve = append(metrics.EquityCurve, initialCapital)

	for _, p := range closed {
		pnl := decimal.NewFromFloat(p.RealizedPnL)
		equity = equity.Add(pnl)
		pnls = append(pnls, p.RealizedPnL)

		switch {
		case pnl.IsPositive():
			metrics.WinningTrades++
			profit = profit.Add(pnl)
		case pnl.IsNegative():
			metrics.LosingTrades++
			loss = loss.Add(pnl.Abs())
		default:
			metrics.BreakevenTrades++
		}

		value, _ := equity.Float64()
		metrics.EquityCurve = append(metrics.EquityCurve, value)
	}

	metrics.DrawdownCurve, metrics.MaxDrawdown = drawdowns(metrics.EquityCurve)
	metrics.GrossProfit, _ = profit.Float64()
	metrics.GrossLoss, _ = loss.Float64()
	metrics.TotalPnL, _ = profit.Sub(loss).Float64()
	metrics.ProfitFactor = ledger.ProfitFactor(metrics.GrossProfit, metrics.GrossLoss)
	metrics.SharpeRatio = sharpe(pnls)
	metrics.FinalCapital = metrics.EquityCurve[len(metrics.EquityCurve)-1]

	if metrics.TotalTrades > 0 {
		metrics.WinRate = float64(metrics.WinningTrades) / float64(metrics.TotalTrades)
	}

	if initialCapital != 0 {
		metrics.ReturnPercentage = (metrics.FinalCapital - initialCapital) / initialCapital * 100
	}

	return metrics
}

// drawdowns returns the running-peak drawdown at each sample and its maximum.
func drawdowns(curve []float64) ([]float64, float64) {
	out := make([]float64, len(curve))
	maxDrawdown := 0.0

	if len(curve) == 0 {
		return out, 0
	}

	peak := curve[0]
	for i, value := range curve {
		if value > peak {
			peak = value
		}

		if peak > 0 && value < peak {
			out[i] = (peak - value) / peak
		}

		maxDrawdown = math.Max(maxDrawdown, out[i])
	}

	return out, maxDrawdown
}

// sharpe is mean / population stdev of trade pnl, 0 when undefined.
func sharpe(pnls []float64) float64 {
	if len(pnls) < 2 {
		return 0
	}

	mean := 0.0
	for _, p := range pnls {
		mean += p
	}

	mean /= float64(len(pnls))

	variance := 0.0
	for _, p := range pnls {
		variance += (p - mean) * (p - mean)
	}

	stdev := math.Sqrt(variance / float64(len(pnls)))
	if stdev == 0 {
		return 0
	}

	return mean / stdev
}

// Analyze breaks closed trades down by outcome, side, holding time and exit reason.
func Analyze(closed []types.Position) types.TradeAnalysis {
	analysis := types.TradeAnalysis{
		AvgWin:            0,
		AvgLoss:           0,
		LargestWin:        0,
		LargestLoss:       0,
		LongTrades:        0,
		ShortTrades:       0,
		AvgHoldingSeconds: 0,
		ExitReasons:       make(map[string]int),
	}

	var (
		wins, losses        int
		winSum, lossSum     float64
		holdingSecondsTotal float64
	)

	for _, p := range closed {
		switch {
		case p.RealizedPnL > 0:
			wins++
			winSum += p.RealizedPnL
			analysis.LargestWin = math.Max(analysis.LargestWin, p.RealizedPnL)
		case p.RealizedPnL < 0:
			losses++
			lossSum += -p.RealizedPnL
			analysis.LargestLoss = math.Max(analysis.LargestLoss, -p.RealizedPnL)
		}

		if p.Side == types.SideLong {
			analysis.LongTrades++
		} else {
			analysis.ShortTrades++
		}

		holdingSecondsTotal += p.HoldingTime(p.ExitTime).Seconds()
		analysis.ExitReasons[p.ExitReason]++
	}

	if wins > 0 {
		analysis.AvgWin = winSum / float64(wins)
	}

	if losses > 0 {
		analysis.AvgLoss = lossSum / float64(losses)
	}

	if len(closed) > 0 {
		analysis.AvgHoldingSeconds = holdingSecondsTotal / float64(len(closed))
	}

	return analysis
}
