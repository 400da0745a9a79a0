package types

import (
	"math"
	"os"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"gopkg.in/yaml.v3"
)

// InfiniteProfitFactor is reported when there are winning trades but no losses.
var InfiniteProfitFactor = math.Inf(1)

// PerformanceMetrics is derived from closed positions at report time.
type PerformanceMetrics struct {
	// Count of closed trades.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Trades with positive realized pnl.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Trades with negative realized pnl.
	LosingTrades int `yaml:"losing_trades" json:"losing_trades"`
	// Trades with exactly zero realized pnl.
	BreakevenTrades int `yaml:"breakeven_trades" json:"breakeven_trades"`
	// WinRate is winning / total as a fraction.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Sum of positive pnl.
	GrossProfit float64 `yaml:"gross_profit" json:"gross_profit"`
	// Magnitude of the sum of negative pnl.
	GrossLoss float64 `yaml:"gross_loss" json:"gross_loss"`
	// Sum of all realized pnl.
	TotalPnL float64 `yaml:"total_pnl" json:"total_pnl"`
	// GrossProfit / GrossLoss, InfiniteProfitFactor when GrossLoss is zero.
	ProfitFactor float64 `yaml:"profit_factor" json:"-"`
	// Largest running-peak drawdown over the equity curve, as a fraction.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// mean(trade pnl) / stdev(trade pnl), 0 when undefined.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// Capital after each closed trade, starting with initial capital.
	EquityCurve []float64 `yaml:"equity_curve" json:"equity_curve"`
	// Drawdown at each equity sample.
	DrawdownCurve []float64 `yaml:"drawdown_curve" json:"drawdown_curve"`
	// Last equity sample.
	FinalCapital float64 `yaml:"final_capital" json:"final_capital"`
	// Percent change from initial capital.
	ReturnPercentage float64 `yaml:"return_percentage" json:"return_percentage"`
}

// HasInfiniteProfitFactor reports the "no losing trades" sentinel.
func (m PerformanceMetrics) HasInfiniteProfitFactor() bool {
	return math.IsInf(m.ProfitFactor, 1)
}

// TradeAnalysis is the per-trade breakdown that accompanies the metrics.
type TradeAnalysis struct {
	AvgWin            float64        `yaml:"avg_win" json:"avg_win"`
	AvgLoss           float64        `yaml:"avg_loss" json:"avg_loss"`
	LargestWin        float64        `yaml:"largest_win" json:"largest_win"`
	LargestLoss       float64        `yaml:"largest_loss" json:"largest_loss"`
	LongTrades        int            `yaml:"long_trades" json:"long_trades"`
	ShortTrades       int            `yaml:"short_trades" json:"short_trades"`
	AvgHoldingSeconds float64        `yaml:"avg_holding_seconds" json:"avg_holding_seconds"`
	ExitReasons       map[string]int `yaml:"exit_reasons" json:"exit_reasons"`
}

// BacktestReport is the output of one replay.
type BacktestReport struct {
	// ID is derived from the run configuration, never from the clock.
	ID             string             `yaml:"id" json:"id"`
	Symbol         string             `yaml:"symbol" json:"symbol"`
	Strategy       string             `yaml:"strategy" json:"strategy"`
	Timeframe      string             `yaml:"timeframe" json:"timeframe"`
	InitialCapital float64            `yaml:"initial_capital" json:"initial_capital"`
	BarsProcessed  int                `yaml:"bars_processed" json:"bars_processed"`
	BarsSkipped    int                `yaml:"bars_skipped" json:"bars_skipped"`
	Signals        SignalStats        `yaml:"signals" json:"signals"`
	Metrics        PerformanceMetrics `yaml:"metrics" json:"metrics"`
	Analysis       TradeAnalysis      `yaml:"analysis" json:"analysis"`
	// PnLAnomalies counts closes whose pnl hit the notional clamp.
	PnLAnomalies int `yaml:"pnl_anomalies" json:"pnl_anomalies"`
	// DrawdownHalted is set when the max drawdown guard liquidated the account.
	DrawdownHalted bool       `yaml:"drawdown_halted" json:"drawdown_halted"`
	Trades         []Position `yaml:"trades" json:"trades"`
	Summary        string     `yaml:"summary" json:"summary"`
}

// WriteReport writes reports to path as YAML.
func WriteReport(path string, reports ...BacktestReport) error {
	var (
		data []byte
		err  error
	)

	if len(reports) == 1 {
		data, err = yaml.Marshal(reports[0])
	} else {
		data, err = yaml.Marshal(reports)
	}

	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal backtest report to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to write backtest report", err)
	}

	return nil
}
