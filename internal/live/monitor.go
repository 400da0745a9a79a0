package live

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/exchange"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"go.uber.org/zap"
)

// DrawdownMonitor polls account equity and raises a one-shot liquidation
// request when the drawdown from the high-water mark reaches the threshold.
// Once triggered it stays triggered.
type DrawdownMonitor struct {
	source    exchange.EquitySource
	threshold float64
	interval  time.Duration
	logger    *logger.Logger

	mu        sync.Mutex
	peak      float64
	drawdown  float64
	triggered atomic.Bool
	once      sync.Once
	fire      chan struct{}
}

// NewDrawdownMonitor creates a monitor. threshold is a fraction in (0, 1].
func NewDrawdownMonitor(source exchange.EquitySource, threshold float64, interval time.Duration, log *logger.Logger) (*DrawdownMonitor, error) {
	if source == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "drawdown monitor needs an equity source")
	}

	if threshold <= 0 || threshold > 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "drawdown threshold must be in (0, 1], got %v", threshold)
	}

	if interval <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "monitor interval must be positive, got %v", interval)
	}

	return &DrawdownMonitor{
		source:    source,
		threshold: threshold,
		interval:  interval,
		logger:    log.Named("drawdown-monitor"),
		mu:        sync.Mutex{},
		peak:      0,
		drawdown:  0,
		triggered: atomic.Bool{},
		once:      sync.Once{},
		fire:      make(chan struct{}),
	}, nil
}

// Liquidation is closed when the monitor triggers.
func (m *DrawdownMonitor) Liquidation() <-chan struct{} {
	return m.fire
}

// Triggered reports whether the liquidation request has been raised.
func (m *DrawdownMonitor) Triggered() bool {
	return m.triggered.Load()
}

// Peak is the highest equity observed so far.
func (m *DrawdownMonitor) Peak() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.peak
}

// Drawdown is the drawdown measured by the last successful check.
func (m *DrawdownMonitor) Drawdown() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.drawdown
}

// Check performs one equity poll and reports whether the monitor is
// triggered afterwards. Equity failures are logged and never trigger.
func (m *DrawdownMonitor) Check(ctx context.Context) bool {
	if m.Triggered() {
		return true
	}

	equity, err := m.source.Equity(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Warn("Failed to read account equity", zap.Error(err))
		}

		return false
	}

	// an empty or unfunded account has nothing to protect
	if equity.Value <= 0 {
		return false
	}

	m.mu.Lock()
	if equity.Value > m.peak {
		m.peak = equity.Value
	}

	drawdown := (m.peak - equity.Value) / m.peak
	m.drawdown = drawdown
	peak := m.peak
	m.mu.Unlock()

	if equity.OpenPositions == 0 || drawdown < m.threshold {
		return false
	}

	m.once.Do(func() {
		m.triggered.Store(true)
		close(m.fire)
		m.logger.Error("Account drawdown breached threshold, requesting liquidation",
			zap.Float64("drawdown", drawdown),
			zap.Float64("threshold", m.threshold),
			zap.Float64("peak", peak),
			zap.Float64("equity", equity.Value),
			zap.Int("open_positions", equity.OpenPositions),
		)
	})

	return true
}

// Run polls until the monitor triggers or ctx is done.
func (m *DrawdownMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if m.Check(ctx) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
