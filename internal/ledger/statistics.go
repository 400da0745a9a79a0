package ledger

import (
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/shopspring/decimal"
)

// Statistics summarises the ledger's closed history.
type Statistics struct {
	OpenCount       int     `yaml:"open_count" json:"open_count"`
	ClosedCount     int     `yaml:"closed_count" json:"closed_count"`
	WinningTrades   int     `yaml:"winning_trades" json:"winning_trades"`
	LosingTrades    int     `yaml:"losing_trades" json:"losing_trades"`
	BreakevenTrades int     `yaml:"breakeven_trades" json:"breakeven_trades"`
	WinRate         float64 `yaml:"win_rate" json:"win_rate"`
	AvgWin          float64 `yaml:"avg_win" json:"avg_win"`
	AvgLoss         float64 `yaml:"avg_loss" json:"avg_loss"`
	GrossProfit     float64 `yaml:"gross_profit" json:"gross_profit"`
	GrossLoss       float64 `yaml:"gross_loss" json:"gross_loss"`
	// ProfitFactor is types.InfiniteProfitFactor with wins and no losses
	ProfitFactor float64 `yaml:"profit_factor" json:"-"`
	TotalPnL     float64 `yaml:"total_pnl" json:"total_pnl"`
	// Utilization is open positions over the concurrency limit
	Utilization float64 `yaml:"utilization" json:"utilization"`
	Anomalies   int     `yaml:"anomalies" json:"anomalies"`
}

// Statistics computes counts and pnl aggregates over closed positions.
func (l *Ledger) Statistics() Statistics {
	stats := Statistics{
		OpenCount:   len(l.open),
		ClosedCount: len(l.closed),
		Anomalies:   l.anomalies,
	} //nolint:exhaustruct // aggregates filled below

	profit, loss, total := decimal.Zero, decimal.Zero, decimal.Zero

	for _, p := range l.closed {
		pnl := decimal.NewFromFloat(p.RealizedPnL)
		total = total.Add(pnl)

		switch {
		case pnl.IsPositive():
			stats.WinningTrades++
			profit = profit.Add(pnl)
		case pnl.IsNegative():
			stats.LosingTrades++
			loss = loss.Add(pnl.Abs())
		default:
			stats.BreakevenTrades++
		}
	}

	stats.GrossProfit, _ = profit.Float64()
	stats.GrossLoss, _ = loss.Float64()
	stats.TotalPnL, _ = total.Float64()
	stats.ProfitFactor = ProfitFactor(stats.GrossProfit, stats.GrossLoss)

	if stats.ClosedCount > 0 {
		stats.WinRate = float64(stats.WinningTrades) / float64(stats.ClosedCount)
	}

	if stats.WinningTrades > 0 {
		stats.AvgWin = stats.GrossProfit / float64(stats.WinningTrades)
	}

	if stats.LosingTrades > 0 {
		stats.AvgLoss = stats.GrossLoss / float64(stats.LosingTrades)
	}

	if l.config.MaxConcurrentPositions > 0 {
		stats.Utilization = float64(stats.OpenCount) / float64(l.config.MaxConcurrentPositions)
	}

	return stats
}

// ProfitFactor is grossProfit / grossLoss. With no losses it is
// types.InfiniteProfitFactor when there was any profit, otherwise 0.
func ProfitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return types.InfiniteProfitFactor
		}

		return 0
	}

	return grossProfit / grossLoss
}
