// Package live drives the trading engine from a polled market data feed and
// mirrors its ledger mutations onto an order executor. A drawdown monitor
// runs next to the polling loop and can force a one-time liquidation.
package live

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/engine"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/exchange"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var validate = validator.New()

// DefaultMaxConsecutiveErrors is how many failed iterations in a row the
// loop tolerates. The next failure is fatal.
const DefaultMaxConsecutiveErrors = 5

const flatEpsilon = 1e-9

type Config struct {
	Symbol string `validate:"required"`
	// Interval is the feed's bar interval label, e.g. "1m"
	Interval string `validate:"required"`
	// BarDuration converts LookbackBars into the first fetch window
	BarDuration          time.Duration `validate:"gt=0"`
	LookbackBars         int           `validate:"gte=1"`
	PollInterval         time.Duration `validate:"gt=0"`
	MaxConsecutiveErrors int           `validate:"gte=1"`
	Leverage             float64       `validate:"gte=1"`
	DrawdownThreshold    float64       `validate:"gt=0,lte=1"`
	MonitorInterval      time.Duration `validate:"gt=0"`
}

// NewConfig builds a loop config from the run configuration. The timeframe
// must parse as a Go duration.
func NewConfig(cfg types.Config) (Config, error) {
	barDuration, err := time.ParseDuration(cfg.Trading.Timeframe)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unsupported timeframe %q", cfg.Trading.Timeframe) //nolint:exhaustruct // zero value on error
	}

	return Config{
		Symbol:               cfg.Trading.Market,
		Interval:             cfg.Trading.Timeframe,
		BarDuration:          barDuration,
		LookbackBars:         cfg.Live.LookbackBars,
		PollInterval:         cfg.Live.PollInterval,
		MaxConsecutiveErrors: cfg.Live.MaxConsecutiveErrors,
		Leverage:             cfg.Trading.Leverage,
		DrawdownThreshold:    cfg.Live.DrawdownThreshold,
		MonitorInterval:      cfg.Live.MonitorInterval,
	}, nil
}

// pendingOrder is an engine mutation not yet acknowledged by the executor.
type pendingOrder struct {
	position types.Position
	entry    bool
}

// Loop polls the feed, feeds new bars to the engine and mirrors opens and
// closes to the executor. The engine is the source of truth; orders that
// fail are retried in order on the next iteration.
type Loop struct {
	config   Config
	engine   *engine.Engine
	feed     exchange.MarketDataFeed
	executor exchange.OrderExecutor
	snapshot *Snapshot
	equity   exchange.EquitySource
	logger   *logger.Logger
	now      func() time.Time

	lastBar           time.Time
	net               float64
	pending           []pendingOrder
	consecutiveErrors int
	iterations        int
	running           atomic.Bool
}

func NewLoop(config Config, eng *engine.Engine, feed exchange.MarketDataFeed, executor exchange.OrderExecutor, log *logger.Logger) (*Loop, error) {
	if eng == nil || feed == nil || executor == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "live loop needs an engine, a feed and an executor")
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid live loop configuration", err)
	}

	snapshot := NewSnapshot(eng.Capital().CurrentCapital)

	return &Loop{
		config:            config,
		engine:            eng,
		feed:              feed,
		executor:          executor,
		snapshot:          snapshot,
		equity:            snapshot,
		logger:            log.Named("live"),
		now:               time.Now,
		lastBar:           time.Time{},
		net:               0,
		pending:           nil,
		consecutiveErrors: 0,
		iterations:        0,
		running:           atomic.Bool{},
	}, nil
}

// SetEquitySource replaces the published snapshot as the monitor's input,
// e.g. with the venue's own account equity.
func (l *Loop) SetEquitySource(source exchange.EquitySource) {
	l.equity = source
}

// SetClock overrides time.Now.
func (l *Loop) SetClock(now func() time.Time) {
	l.now = now
}

func (l *Loop) Snapshot() *Snapshot {
	return l.snapshot
}

// Iterations counts completed polling iterations, successful or not.
func (l *Loop) Iterations() int {
	return l.iterations
}

// Run starts the engine and polls until ctx is cancelled, the drawdown
// monitor liquidates the account, or too many iterations fail in a row.
// Only the last case returns an error, a *errors.FatalLoopError.
// The engine is stopped on every exit path.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeInvalidEngineState, "live loop is already running")
	}
	defer l.running.Store(false)

	monitor, err := NewDrawdownMonitor(l.equity, l.config.DrawdownThreshold, l.config.MonitorInterval, l.logger)
	if err != nil {
		return err
	}

	if err := l.engine.Start(); err != nil {
		return err
	}

	l.logger.Info("Live loop started",
		zap.String("symbol", l.config.Symbol),
		zap.String("interval", l.config.Interval),
		zap.Duration("poll_interval", l.config.PollInterval),
		zap.Int("max_consecutive_errors", l.config.MaxConsecutiveErrors),
	)

	g, gctx := errgroup.WithContext(ctx)
	monitorCtx, stopMonitor := context.WithCancel(gctx)

	g.Go(func() error {
		return monitor.Run(monitorCtx)
	})

	g.Go(func() error {
		defer stopMonitor()

		return l.poll(gctx, monitor)
	})

	return g.Wait()
}

func (l *Loop) poll(ctx context.Context, monitor *DrawdownMonitor) error {
	defer l.shutdown(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-monitor.Liquidation():
			return l.liquidate(ctx)
		default:
		}

		if err := l.iterate(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			l.consecutiveErrors++
			l.logger.Warn("Live iteration failed",
				zap.Error(err),
				zap.Int("consecutive_errors", l.consecutiveErrors),
				zap.Int("limit", l.config.MaxConsecutiveErrors),
			)

			if l.consecutiveErrors > l.config.MaxConsecutiveErrors {
				fatal := errors.NewFatalLoopError(l.consecutiveErrors, l.config.MaxConsecutiveErrors, err)
				l.logger.Error("Live loop giving up", zap.Error(fatal))

				return fatal
			}
		} else {
			l.consecutiveErrors = 0
		}

		l.iterations++

		select {
		case <-ctx.Done():
			return nil
		case <-monitor.Liquidation():
			return l.liquidate(ctx)
		case <-time.After(l.config.PollInterval):
		}
	}
}

// iterate flushes pending orders, then fetches and processes bars newer
// than the last processed one.
func (l *Loop) iterate(ctx context.Context) error {
	now := l.now()

	if err := l.flush(ctx); err != nil {
		l.publish(now)

		return err
	}

	start := l.lastBar
	if start.IsZero() {
		start = now.Add(-time.Duration(l.config.LookbackBars) * l.config.BarDuration)
	}

	bars, err := l.feed.FetchBars(ctx, l.config.Symbol, l.config.Interval, start, now)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch bars", err)
	}

	for _, bar := range bars {
		if !l.lastBar.IsZero() && !bar.Time.After(l.lastBar) {
			continue
		}

		result := l.engine.ProcessBar(bar)
		l.lastBar = bar.Time

		if result.Skipped {
			l.logger.Debug("Bar skipped", zap.Time("time", bar.Time), zap.Error(result.Err))
		}

		// closes always precede opens within a step
		for _, p := range result.Closed {
			l.pending = append(l.pending, pendingOrder{position: p, entry: false})
		}

		for _, p := range result.Opened {
			l.pending = append(l.pending, pendingOrder{position: p, entry: true})
		}

		if err := l.flush(ctx); err != nil {
			l.publish(now)

			return err
		}
	}

	l.publish(now)

	return nil
}

// flush sends pending orders in order and stops at the first failure.
func (l *Loop) flush(ctx context.Context) error {
	for len(l.pending) > 0 {
		next := l.pending[0]

		var err error
		if next.entry {
			err = l.mirrorOpen(ctx, next.position)
		} else {
			err = l.mirrorClose(ctx, next.position)
		}

		if err != nil {
			return err
		}

		l.pending = l.pending[1:]
	}

	l.pending = nil

	return nil
}

func (l *Loop) mirrorOpen(ctx context.Context, p types.Position) error {
	order := types.NewEntryOrder(p, l.config.Leverage)
	if err := order.Validate(); err != nil {
		return err
	}

	result, err := l.executor.OpenMarket(ctx, order.Symbol, order.Side == types.PurchaseTypeBuy, order.Quantity)
	if err := checkResult(result, err, order); err != nil {
		return err
	}

	l.net += signedSize(p)
	l.logger.Info("Entry order filled",
		zap.String("position_id", p.ID),
		zap.String("order_id", result.OrderID),
		zap.String("side", string(order.Side)),
		zap.Float64("size", order.Quantity),
	)

	return nil
}

// mirrorClose flattens the symbol when p is the last exposure on it and
// otherwise sends an offsetting order for p's size.
func (l *Loop) mirrorClose(ctx context.Context, p types.Position) error {
	order := types.NewExitOrder(p, l.config.Leverage)
	if err := order.Validate(); err != nil {
		return err
	}

	remaining := l.net - signedSize(p)

	var (
		result types.OrderResult
		err    error
	)

	if math.Abs(remaining) < flatEpsilon {
		result, err = l.executor.CloseMarket(ctx, order.Symbol)
	} else {
		result, err = l.executor.OpenMarket(ctx, order.Symbol, order.Side == types.PurchaseTypeBuy, order.Quantity)
	}

	if err := checkResult(result, err, order); err != nil {
		return err
	}

	l.net = remaining
	l.logger.Info("Exit order filled",
		zap.String("position_id", p.ID),
		zap.String("order_id", result.OrderID),
		zap.String("reason", order.Reason),
		zap.Float64("pnl", p.RealizedPnL),
	)

	return nil
}

func checkResult(result types.OrderResult, err error, order types.Order) error {
	if err != nil {
		return errors.Wrapf(errors.ErrCodeOrderFailed, err, "order for position %s failed", order.PositionID)
	}

	if result.Status == types.OrderStatusRejected || result.Status == types.OrderStatusFailed {
		return errors.Newf(errors.ErrCodeOrderFailed, "order for position %s %s: %s", order.PositionID, result.Status, result.Message)
	}

	return nil
}

// liquidate closes everything after a monitor breach and stops the engine.
// Orders are sent on a context that survives cancellation of ctx.
func (l *Loop) liquidate(ctx context.Context) error {
	closed := l.engine.Liquidate(types.ExitReasonDrawdownLiquidation)
	l.logger.Error("Liquidating after account drawdown breach", zap.Int("positions", len(closed)))

	for _, p := range closed {
		l.pending = append(l.pending, pendingOrder{position: p, entry: false})
	}

	err := l.flush(context.WithoutCancel(ctx))

	if _, stopErr := l.engine.Stop(); stopErr != nil {
		l.logger.Error("Failed to stop engine after liquidation", zap.Error(stopErr))
	}

	l.publish(l.now())

	if err != nil {
		return errors.Wrap(errors.ErrCodeLiquidationFailed, "failed to mirror liquidation orders", err)
	}

	return nil
}

// shutdown stops the engine if it is still running and mirrors the
// resulting closes.
func (l *Loop) shutdown(ctx context.Context) {
	closed, err := l.engine.Stop()
	if err != nil {
		l.logger.Error("Failed to stop engine", zap.Error(err))

		return
	}

	for _, p := range closed {
		l.pending = append(l.pending, pendingOrder{position: p, entry: false})
	}

	if err := l.flush(context.WithoutCancel(ctx)); err != nil {
		l.logger.Error("Failed to mirror shutdown orders", zap.Error(err), zap.Int("pending", len(l.pending)))
	}

	l.publish(l.now())
	l.logger.Info("Live loop stopped",
		zap.Int("iterations", l.iterations),
		zap.Float64("capital", l.engine.Capital().CurrentCapital),
	)
}

func (l *Loop) publish(at time.Time) {
	l.snapshot.Publish(l.engine.Capital().CurrentCapital, l.engine.OpenCount(), at)
}

func signedSize(p types.Position) float64 {
	if p.Side == types.SideShort {
		return -p.Size
	}

	return p.Size
}
