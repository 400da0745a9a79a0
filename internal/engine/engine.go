// Package engine turns strategy signals into ledger mutations one bar at a
// time. The engine owns its ledger and sizer; callers drive it with
// ProcessBar and read results through copies.
package engine

import (
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/ledger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/risk"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/strategy"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/tradelog"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"go.uber.org/zap"
)

// DefaultHistorySize is the bar window kept when Config.HistorySize is zero.
const DefaultHistorySize = 500

type Config struct {
	Symbol         string               `validate:"required"`
	InitialCapital float64              `validate:"gt=0"`
	Risk           types.RiskParameters `validate:"-"`
	AllowHedging   bool
	// HistorySize bounds the bars handed to the strategy. It must cover
	// the strategy's lookback.
	HistorySize int `validate:"gte=0"`
	// RunID seeds deterministic position ids
	RunID string
}

// ConfigFrom maps the run configuration onto an engine config.
func ConfigFrom(cfg types.Config) Config {
	return Config{
		Symbol:         cfg.Trading.Market,
		InitialCapital: cfg.Trading.InitialCapital,
		Risk:           cfg.Risk,
		AllowHedging:   cfg.Trading.AllowHedging,
		HistorySize:    cfg.Trading.HistorySize,
		RunID:          cfg.ResolvedRunID(),
	}
}

// StepResult reports what one ProcessBar call did.
type StepResult struct {
	// Processed is false when the engine was not running
	Processed bool
	// Skipped is set when the bar was rejected or a strategy call failed
	Skipped bool
	Err     error
	Signals []types.Signal
	Opened  []types.Position
	Closed  []types.Position
}

type Engine struct {
	config    Config
	strategy  strategy.Strategy
	logger    *logger.Logger
	ledger    *ledger.Ledger
	sizer     *risk.Sizer
	capital   types.CapitalState
	state     types.EngineState
	history   []types.Bar
	lastPrice float64
	lastTime  time.Time
	signals   types.SignalStats
	processed int
	skipped   int
	halted    bool
	sink      tradelog.Sink
	callbacks Callbacks
	// step collects mutations of the bar being processed
	step *StepResult
}

// NewEngine validates config and builds a stopped engine around strat.
func NewEngine(config Config, strat strategy.Strategy, log *logger.Logger) (*Engine, error) {
	if strat == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategy, "engine requires a strategy")
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine configuration", err)
	}

	if err := config.Risk.Validate(); err != nil {
		return nil, err
	}

	if config.HistorySize == 0 {
		config.HistorySize = DefaultHistorySize
	}

	if config.HistorySize < strat.RequiredLookback()+1 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"history size %d is smaller than %s lookback %d", config.HistorySize, strat.Name(), strat.RequiredLookback()+1)
	}

	if config.RunID == "" {
		config.RunID = strat.Name() + ":" + config.Symbol
	}

	named := log.Named("engine")

	return &Engine{
		config:   config,
		strategy: strat,
		logger:   named,
		ledger: ledger.NewLedger(named, ledger.Config{
			MaxConcurrentPositions: config.Risk.MaxConcurrentPositions,
			AllowHedging:           config.AllowHedging,
			PnLClampMultiple:       ledger.DefaultPnLClampMultiple,
			Namespace:              ledger.NamespaceFor(config.RunID),
		}),
		sizer:     risk.NewSizer(config.Risk, config.InitialCapital),
		capital:   types.NewCapitalState(config.InitialCapital),
		state:     types.EngineStateStopped,
		history:   make([]types.Bar, 0, config.HistorySize),
		lastPrice: 0,
		lastTime:  time.Time{},
		signals:   types.SignalStats{Total: 0, Executed: 0, Failed: 0},
		processed: 0,
		skipped:   0,
		halted:    false,
		sink:      nil,
		callbacks: Callbacks{}, //nolint:exhaustruct // no callbacks by default
		step:      nil,
	}, nil
}

// SetTradeLogSink sets where closed positions are recorded. nil disables it.
func (e *Engine) SetTradeLogSink(sink tradelog.Sink) {
	e.sink = sink
}

func (e *Engine) SetCallbacks(callbacks Callbacks) {
	e.callbacks = callbacks
}

func (e *Engine) State() types.EngineState {
	return e.state
}

// Start moves a stopped engine to running. It is a no-op when running.
func (e *Engine) Start() error {
	switch e.state {
	case types.EngineStateRunning:
		return nil
	case types.EngineStateStopped:
		e.transition(types.EngineStateRunning)

		return nil
	default:
		return errors.Newf(errors.ErrCodeInvalidEngineState, "cannot start engine while %s", e.state)
	}
}

// Pause is only valid while running.
func (e *Engine) Pause() error {
	if e.state != types.EngineStateRunning {
		return errors.Newf(errors.ErrCodeInvalidEngineState, "cannot pause engine while %s", e.state)
	}

	e.transition(types.EngineStatePaused)

	return nil
}

// Resume is only valid while paused.
func (e *Engine) Resume() error {
	if e.state != types.EngineStatePaused {
		return errors.Newf(errors.ErrCodeInvalidEngineState, "cannot resume engine while %s", e.state)
	}

	e.transition(types.EngineStateRunning)

	return nil
}

// Stop closes every open position at the latest known price and moves the
// engine to stopped. It returns the positions it closed.
func (e *Engine) Stop() ([]types.Position, error) {
	if e.state == types.EngineStateStopped {
		return nil, nil
	}

	var closed []types.Position

	if e.ledger.OpenCount() > 0 {
		if e.lastPrice <= 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidEngineState,
				"cannot close %d open positions without a known price", e.ledger.OpenCount())
		}

		closed = e.closeAll(types.ExitReasonEngineStop)
	}

	e.transition(types.EngineStateStopped)

	return closed, nil
}

// Liquidate closes every open position at the latest known price with reason.
// Entries keep working afterwards; callers that want to halt stop the engine.
func (e *Engine) Liquidate(reason string) []types.Position {
	if e.ledger.OpenCount() == 0 || e.lastPrice <= 0 {
		return nil
	}

	return e.closeAll(reason)
}

func (e *Engine) closeAll(reason string) []types.Position {
	closed := e.ledger.CloseAll(e.lastPrice, e.lastTime, reason)
	for _, p := range closed {
		e.onClosed(p)
	}

	return closed
}

func (e *Engine) transition(to types.EngineState) {
	from := e.state
	e.state = to

	e.logger.Info("Engine state changed",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("strategy", e.strategy.Name()),
	)

	if e.callbacks.OnStateChange != nil {
		(*e.callbacks.OnStateChange)(from, to)
	}
}
