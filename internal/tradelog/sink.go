// Package tradelog stores the record emitted for every closed position.
package tradelog

import (
	"sync"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// Sink is an append-only destination for trade log records.
type Sink interface {
	// Append stores one record.
	Append(record types.TradeLogRecord) error
	// Records returns every record in append order.
	Records() ([]types.TradeLogRecord, error)
	// Close releases the sink. Appending afterwards is an error.
	Close() error
}

// NewRecord builds the record for a closed position.
func NewRecord(p types.Position, drawdown, balance float64) types.TradeLogRecord {
	return types.TradeLogRecord{
		Timestamp:        p.ExitTime,
		PositionID:       p.ID,
		Symbol:           p.Symbol,
		Side:             p.Side,
		EntryPrice:       p.EntryPrice,
		ExitPrice:        p.ExitPrice,
		Size:             p.Size,
		RealizedPnL:      p.RealizedPnL,
		DrawdownAtClose:  drawdown,
		ExitReason:       p.ExitReason,
		ResultingBalance: balance,
		EntryTime:        p.EntryTime,
		ExitTime:         p.ExitTime,
	}
}

// MemorySink keeps records in a slice.
type MemorySink struct {
	mu      sync.Mutex
	records []types.TradeLogRecord
	closed  bool
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		mu:      sync.Mutex{},
		records: nil,
		closed:  false,
	}
}

func (s *MemorySink) Append(record types.TradeLogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errClosed
	}

	s.records = append(s.records, record)

	return nil
}

func (s *MemorySink) Records() ([]types.TradeLogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.TradeLogRecord, len(s.records))
	copy(out, s.records)

	return out, nil
}

func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}
