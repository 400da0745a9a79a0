package types

import "time"

type EngineState string

const (
	EngineStateStopped EngineState = "STOPPED"
	EngineStateRunning EngineState = "RUNNING"
	EngineStatePaused  EngineState = "PAUSED"
)

// SignalStats counts non-None signals and how they resolved.
type SignalStats struct {
	Total    int `yaml:"total" json:"total"`
	Executed int `yaml:"executed" json:"executed"`
	Failed   int `yaml:"failed" json:"failed"`
}

// SuccessRate is executed / max(total, 1) as a percentage.
func (s SignalStats) SuccessRate() float64 {
	total := s.Total
	if total < 1 {
		total = 1
	}

	return float64(s.Executed) / float64(total) * 100
}

// TradeLogRecord is the append-only record emitted for every closed position.
type TradeLogRecord struct {
	Timestamp        time.Time `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	PositionID       string    `yaml:"position_id" json:"position_id" csv:"position_id"`
	Symbol           string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Side             Side      `yaml:"side" json:"side" csv:"side"`
	EntryPrice       float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitPrice        float64   `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	Size             float64   `yaml:"size" json:"size" csv:"size"`
	RealizedPnL      float64   `yaml:"realized_pnl" json:"realized_pnl" csv:"realized_pnl"`
	DrawdownAtClose  float64   `yaml:"drawdown_at_close" json:"drawdown_at_close" csv:"drawdown_at_close"`
	ExitReason       string    `yaml:"exit_reason" json:"exit_reason" csv:"exit_reason"`
	ResultingBalance float64   `yaml:"resulting_balance" json:"resulting_balance" csv:"resulting_balance"`
	EntryTime        time.Time `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	ExitTime         time.Time `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
}
