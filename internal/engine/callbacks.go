package engine

import "github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"

// OnStateChangeCallback is called after every state transition.
type OnStateChangeCallback func(from, to types.EngineState)

// OnSignalCallback is called for every non-None signal once it is resolved.
type OnSignalCallback func(signal types.Signal, executed bool)

// OnPositionOpenedCallback is called after the ledger opens a position.
type OnPositionOpenedCallback func(position types.Position)

// OnPositionClosedCallback is called after the ledger closes a position.
type OnPositionClosedCallback func(position types.Position)

// OnBarSkippedCallback is called when a bar is rejected or a strategy call fails.
type OnBarSkippedCallback func(bar types.Bar, err error)

// OnDrawdownBreachCallback is called once, when the drawdown guard liquidates.
type OnDrawdownBreachCallback func(drawdown float64, closed []types.Position)

// Callbacks holds the engine's observers. All fields are pointers; nil
// means the callback is not invoked. Callbacks run on the engine's
// goroutine and must not call back into the engine.
type Callbacks struct {
	OnStateChange    *OnStateChangeCallback
	OnSignal         *OnSignalCallback
	OnPositionOpened *OnPositionOpenedCallback
	OnPositionClosed *OnPositionClosedCallback
	OnBarSkipped     *OnBarSkippedCallback
	OnDrawdownBreach *OnDrawdownBreachCallback
}
