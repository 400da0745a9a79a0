package live

import (
	"context"
	"sync"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/exchange"
)

// Snapshot is the equity view the loop publishes after every iteration.
// It is the monitor's default equity source and is safe for concurrent use.
type Snapshot struct {
	mu     sync.RWMutex
	equity exchange.AccountEquity
}

// NewSnapshot starts the snapshot at initial capital with nothing open.
func NewSnapshot(initial float64) *Snapshot {
	return &Snapshot{
		mu: sync.RWMutex{},
		equity: exchange.AccountEquity{
			Value:         initial,
			OpenPositions: 0,
			UpdatedAt:     time.Time{},
		},
	}
}

// Publish replaces the current view.
func (s *Snapshot) Publish(value float64, openPositions int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.equity = exchange.AccountEquity{
		Value:         value,
		OpenPositions: openPositions,
		UpdatedAt:     at,
	}
}

// Equity implements exchange.EquitySource.
func (s *Snapshot) Equity(ctx context.Context) (exchange.AccountEquity, error) {
	if err := ctx.Err(); err != nil {
		return exchange.AccountEquity{}, err //nolint:exhaustruct // zero value on cancellation
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.equity, nil
}
