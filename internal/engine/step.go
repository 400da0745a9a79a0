package engine

import (
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/ledger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/tradelog"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"
)

var validate = validator.New()

// ProcessBar runs one bar through the engine. It does nothing unless the
// engine is running. Malformed or out of order bars and strategy failures
// skip the bar; they are reported in the result and never returned.
//
// Order: mark to market, stop losses and the drawdown guard, strategy
// signals, signal execution, counters.
//
// Only malformed or out of order bars are kept out of the history. A bar
// whose strategy call fails has already been marked to market and checked
// against stops and the drawdown guard, so it stays in the history and sets
// the last price; only its signals are dropped.
func (e *Engine) ProcessBar(bar types.Bar) StepResult {
	result := StepResult{
		Processed: false,
		Skipped:   false,
		Err:       nil,
		Signals:   nil,
		Opened:    nil,
		Closed:    nil,
	}

	if e.state != types.EngineStateRunning {
		return result
	}

	result.Processed = true
	e.step = &result

	defer func() { e.step = nil }()

	if err := e.acceptBar(bar); err != nil {
		e.skipBar(bar, err)

		return result
	}

	// 1. mark to market
	e.refreshCapital()

	// 2. stop losses, then the drawdown guard
	for _, p := range e.ledger.CheckStopLosses(bar.Close) {
		closed, err := e.ledger.ClosePosition(p.ID, bar.Close, bar.Time, types.ExitReasonStopLoss)
		if err != nil {
			e.logger.Error("Failed to close stopped position", zap.String("id", p.ID), zap.Error(err))

			continue
		}

		e.onClosed(closed)
	}

	e.checkDrawdown()

	// 3. entry and exit signals
	index := len(e.history) - 1
	existing := e.ledger.OpenPositions()

	entry, err := e.strategy.GenerateSignal(e.history, index)
	if err != nil {
		e.skipBar(bar, err)

		return result
	}

	exits := make([]types.Signal, 0, len(existing))

	for _, p := range existing {
		exit, err := e.strategy.EvaluatePosition(e.history, index, p)
		if err != nil {
			e.skipBar(bar, err)

			return result
		}

		exits = append(exits, exit)
	}

	// 4. exits first so a reversal can reopen on the same bar
	for _, signal := range append(exits, entry) {
		if signal.IsNone() {
			continue
		}

		executed := e.ExecuteSignal(signal)

		// 5. counters
		e.signals.Total++
		if executed {
			e.signals.Executed++
		} else {
			e.signals.Failed++
		}

		result.Signals = append(result.Signals, signal)

		if e.callbacks.OnSignal != nil {
			(*e.callbacks.OnSignal)(signal, executed)
		}
	}

	e.refreshCapital()
	e.processed++

	return result
}

// acceptBar validates bar and appends it to the history window.
func (e *Engine) acceptBar(bar types.Bar) error {
	if err := bar.Validate(); err != nil {
		return err
	}

	if bar.Symbol != "" && bar.Symbol != e.config.Symbol {
		return errors.Newf(errors.ErrCodeInvalidBar, "bar symbol %s does not match engine symbol %s", bar.Symbol, e.config.Symbol)
	}

	if !e.lastTime.IsZero() && bar.Time.Before(e.lastTime) {
		return errors.Newf(errors.ErrCodeOutOfOrderBar, "bar at %s is older than last bar at %s",
			bar.Time.Format(time.RFC3339), e.lastTime.Format(time.RFC3339))
	}

	if len(e.history) == e.config.HistorySize {
		copy(e.history, e.history[1:])
		e.history = e.history[:len(e.history)-1]
	}

	e.history = append(e.history, bar)
	e.lastPrice = bar.Close
	e.lastTime = bar.Time

	return nil
}

func (e *Engine) skipBar(bar types.Bar, err error) {
	e.skipped++

	if e.step != nil {
		e.step.Skipped = true
		e.step.Err = err
	}

	e.logger.Warn("Skipping bar",
		zap.String("symbol", bar.Symbol),
		zap.Time("time", bar.Time),
		zap.Bool("data_error", errors.IsDataError(err)),
		zap.Error(err),
	)

	if e.callbacks.OnBarSkipped != nil {
		(*e.callbacks.OnBarSkipped)(bar, err)
	}
}

// checkDrawdown liquidates and halts entries the first time the account
// drawdown reaches the configured maximum.
func (e *Engine) checkDrawdown() {
	if e.halted || !e.sizer.UpdateBalance(e.capital.CurrentCapital) {
		return
	}

	drawdown := e.sizer.Drawdown()
	e.halted = true

	e.logger.Warn("Max drawdown reached, liquidating and halting entries",
		zap.Float64("drawdown", drawdown),
		zap.Float64("threshold", e.config.Risk.MaxDrawdown),
		zap.Float64("capital", e.capital.CurrentCapital),
		zap.Float64("peak", e.sizer.Peak()),
	)

	closed := e.closeAll(types.ExitReasonMaxDrawdown)

	if e.callbacks.OnDrawdownBreach != nil {
		(*e.callbacks.OnDrawdownBreach)(drawdown, closed)
	}
}

// ExecuteSignal resolves signal against the sizer and ledger. It returns
// whether the ledger changed. Rejections are logged, never returned.
func (e *Engine) ExecuteSignal(signal types.Signal) bool {
	switch signal.Direction {
	case types.DirectionLong, types.DirectionShort:
		return e.openFromSignal(signal)
	case types.DirectionCloseLong, types.DirectionCloseShort:
		side, _ := signal.Direction.Side()

		return e.closeFromSignal(signal, func(price float64) []types.Position {
			return e.ledger.CloseBySide(side, price, signal.Time, exitReason(signal))
		})
	case types.DirectionCloseAll:
		return e.closeFromSignal(signal, func(price float64) []types.Position {
			return e.ledger.CloseAll(price, signal.Time, exitReason(signal))
		})
	default:
		return false
	}
}

func (e *Engine) openFromSignal(signal types.Signal) bool {
	side, _ := signal.Direction.Side()

	if e.halted {
		e.logger.Debug("Entry ignored, drawdown halt in effect", zap.String("direction", string(signal.Direction)))

		return false
	}

	if ok, reason := e.sizer.CanOpen(signal.Direction, e.ledger.OpenCount(), e.capital.CurrentCapital); !ok {
		e.logger.Debug("Entry rejected by sizer", zap.String("reason", reason))

		return false
	}

	size := e.sizer.PositionSize(e.capital.InitialCapital, signal.Price, signal.StopLoss)

	stopLoss := optional.None[float64]()
	if signal.StopLoss > 0 {
		stopLoss = optional.Some(signal.StopLoss)
	}

	position, err := e.ledger.OpenPosition(ledger.OpenRequest{
		Symbol:     e.config.Symbol,
		Side:       side,
		EntryPrice: signal.Price,
		Size:       size,
		Time:       signal.Time,
		StopLoss:   stopLoss,
		Metadata: map[string]any{
			"strategy": e.strategy.Name(),
			"reason":   signal.Reason,
			"strength": signal.Strength,
		},
	})
	if err != nil {
		if errors.IsRejection(err) {
			e.logger.Debug("Entry rejected by ledger", zap.Error(err))
		} else {
			e.logger.Error("Failed to open position", zap.Error(err))
		}

		return false
	}

	e.refreshCapital()

	if e.step != nil {
		e.step.Opened = append(e.step.Opened, position)
	}

	if e.callbacks.OnPositionOpened != nil {
		(*e.callbacks.OnPositionOpened)(position)
	}

	return true
}

func (e *Engine) closeFromSignal(signal types.Signal, close func(price float64) []types.Position) bool {
	price := signal.Price
	if price <= 0 {
		price = e.lastPrice
	}

	closed := close(price)
	for _, p := range closed {
		e.onClosed(p)
	}

	return len(closed) > 0
}

func exitReason(signal types.Signal) string {
	if signal.Reason != "" {
		return signal.Reason
	}

	return types.ExitReasonSignal
}

// onClosed refreshes capital and records a closed position.
func (e *Engine) onClosed(p types.Position) {
	e.refreshCapital()

	if e.step != nil {
		e.step.Closed = append(e.step.Closed, p)
	}

	if e.sink != nil {
		record := tradelog.NewRecord(p, e.capital.Drawdown(), e.capital.CurrentCapital)
		if err := e.sink.Append(record); err != nil {
			e.logger.Error("Failed to append trade log record", zap.String("id", p.ID), zap.Error(err))
		}
	}

	if e.callbacks.OnPositionClosed != nil {
		(*e.callbacks.OnPositionClosed)(p)
	}
}

func (e *Engine) refreshCapital() {
	unrealized := 0.0
	if e.lastPrice > 0 {
		unrealized = e.ledger.MarkToMarket(e.lastPrice)
	}

	e.capital.Update(e.ledger.RealizedPnL(), unrealized)
}
