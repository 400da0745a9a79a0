// Package strategy defines the strategy contract, the name to constructor
// registry and the built-in strategy variants.
//
// A strategy sees bars only. It never reads or writes ledger state; the
// engine hands EvaluatePosition a read-only position snapshot.
package strategy

import (
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// Built-in strategy names.
const (
	NameBBRSI          = "bbrsi"
	NameRSIScalping    = "rsi_scalping"
	NameMARSIHybrid    = "ma_rsi_hybrid"
	NameScalping       = "scalping"
	NameSuperOptimized = "super_optimized"
)

type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string
	// RequiredLookback is the number of bars before index that must exist
	// before indicators can be computed.
	RequiredLookback() int
	// ComputeIndicators is a pure function of history[index-RequiredLookback() : index+1].
	// It returns an InsufficientDataError while warming up.
	ComputeIndicators(history []types.Bar, index int) (types.IndicatorSet, error)
	// GenerateSignal returns the entry recommendation for history[index].
	// During warm-up it returns a None signal and no error. It may only
	// update the strategy's own previous-value trackers.
	GenerateSignal(history []types.Bar, index int) (types.Signal, error)
	// EvaluatePosition returns the exit recommendation for position at history[index].
	EvaluatePosition(history []types.Bar, index int, position types.Position) (types.Signal, error)
	// Reset clears previous-value trackers so a new run starts clean.
	Reset()
}

// Constructor builds a strategy from raw config params decoded onto its defaults.
type Constructor func(params map[string]any) (Strategy, error)
