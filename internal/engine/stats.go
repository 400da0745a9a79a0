package engine

import (
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/ledger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// CapitalStats is the capital part of PerformanceStats.
type CapitalStats struct {
	Initial          float64 `yaml:"initial" json:"initial"`
	Current          float64 `yaml:"current" json:"current"`
	Peak             float64 `yaml:"peak" json:"peak"`
	RealizedPnL      float64 `yaml:"realized_pnl" json:"realized_pnl"`
	UnrealizedPnL    float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
	TotalPnL         float64 `yaml:"total_pnl" json:"total_pnl"`
	ReturnPercentage float64 `yaml:"return_percentage" json:"return_percentage"`
	Drawdown         float64 `yaml:"drawdown" json:"drawdown"`
}

type PerformanceStats struct {
	State   types.EngineState `yaml:"state" json:"state"`
	Signals types.SignalStats `yaml:"signals" json:"signals"`
	// SuccessRate is executed / max(total, 1) as a percentage
	SuccessRate   float64           `yaml:"success_rate" json:"success_rate"`
	Ledger        ledger.Statistics `yaml:"ledger" json:"ledger"`
	Capital       CapitalStats      `yaml:"capital" json:"capital"`
	BarsProcessed int               `yaml:"bars_processed" json:"bars_processed"`
	BarsSkipped   int               `yaml:"bars_skipped" json:"bars_skipped"`
	Halted        bool              `yaml:"halted" json:"halted"`
}

func (e *Engine) PerformanceStats() PerformanceStats {
	return PerformanceStats{
		State:       e.state,
		Signals:     e.signals,
		SuccessRate: e.signals.SuccessRate(),
		Ledger:      e.ledger.Statistics(),
		Capital: CapitalStats{
			Initial:          e.capital.InitialCapital,
			Current:          e.capital.CurrentCapital,
			Peak:             e.capital.PeakCapital,
			RealizedPnL:      e.capital.RealizedPnL,
			UnrealizedPnL:    e.capital.UnrealizedPnL,
			TotalPnL:         e.capital.TotalPnL(),
			ReturnPercentage: e.capital.ReturnPercentage(),
			Drawdown:         e.capital.Drawdown(),
		},
		BarsProcessed: e.processed,
		BarsSkipped:   e.skipped,
		Halted:        e.halted,
	}
}

// Capital returns the current capital state.
func (e *Engine) Capital() types.CapitalState {
	return e.capital
}

func (e *Engine) OpenPositions() []types.Position {
	return e.ledger.OpenPositions()
}

func (e *Engine) ClosedPositions() []types.Position {
	return e.ledger.ClosedPositions()
}

func (e *Engine) OpenCount() int {
	return e.ledger.OpenCount()
}

// Anomalies counts closes whose pnl was clamped.
func (e *Engine) Anomalies() int {
	return e.ledger.Anomalies()
}

// Halted reports whether the drawdown guard stopped new entries.
func (e *Engine) Halted() bool {
	return e.halted
}

// LastPrice is the close of the last accepted bar.
func (e *Engine) LastPrice() float64 {
	return e.lastPrice
}
