package types

import (
	"maps"
	"time"
)

type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLong {
		return SideShort
	}

	return SideLong
}

// EntryDirection is the signal direction that opens this side.
func (s Side) EntryDirection() Direction {
	if s == SideLong {
		return DirectionLong
	}

	return DirectionShort
}

type PositionStatus string

const (
	PositionStatusOpen      PositionStatus = "OPEN"
	PositionStatusClosed    PositionStatus = "CLOSED"
	PositionStatusCancelled PositionStatus = "CANCELLED"
)

// Position is a tracked trade. Only the ledger creates or closes one;
// everyone else holds copies.
type Position struct {
	ID         string         `yaml:"id" json:"id"`
	Symbol     string         `yaml:"symbol" json:"symbol"`
	Side       Side           `yaml:"side" json:"side"`
	EntryPrice float64        `yaml:"entry_price" json:"entry_price"`
	EntryTime  time.Time      `yaml:"entry_time" json:"entry_time"`
	Size       float64        `yaml:"size" json:"size"`
	Notional   float64        `yaml:"notional" json:"notional"`
	StopLoss   float64        `yaml:"stop_loss" json:"stop_loss"`
	Status     PositionStatus `yaml:"status" json:"status"`
	ExitPrice  float64        `yaml:"exit_price" json:"exit_price"`
	ExitTime   time.Time      `yaml:"exit_time" json:"exit_time"`
	// RealizedPnL is written once, when the position closes
	RealizedPnL float64        `yaml:"realized_pnl" json:"realized_pnl"`
	ExitReason  string         `yaml:"exit_reason" json:"exit_reason"`
	Metadata    map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// IsOpen reports whether the position is still open.
func (p Position) IsOpen() bool {
	return p.Status == PositionStatusOpen
}

// UnrealizedPnL is the mark-to-market P&L at price.
func (p Position) UnrealizedPnL(price float64) float64 {
	if p.Side == SideLong {
		return (price - p.EntryPrice) * p.Size
	}

	return (p.EntryPrice - price) * p.Size
}

// ProfitPct is the fractional move in the position's favour at price.
func (p Position) ProfitPct(price float64) float64 {
	if p.EntryPrice == 0 {
		return 0
	}

	if p.Side == SideLong {
		return (price - p.EntryPrice) / p.EntryPrice
	}

	return (p.EntryPrice - price) / p.EntryPrice
}

// HoldingTime measures time in position against at, usually a bar timestamp.
func (p Position) HoldingTime(at time.Time) time.Duration {
	end := at
	if !p.IsOpen() && !p.ExitTime.IsZero() {
		end = p.ExitTime
	}

	if end.Before(p.EntryTime) {
		return 0
	}

	return end.Sub(p.EntryTime)
}

// StopBreached reports whether price crosses the stop. An unset stop never triggers.
func (p Position) StopBreached(price float64) bool {
	if p.StopLoss <= 0 {
		return false
	}

	if p.Side == SideLong {
		return price <= p.StopLoss
	}

	return price >= p.StopLoss
}

// Clone returns a copy whose metadata can be changed without touching p.
func (p Position) Clone() Position {
	cp := p
	if p.Metadata != nil {
		cp.Metadata = maps.Clone(p.Metadata)
	}

	return cp
}
