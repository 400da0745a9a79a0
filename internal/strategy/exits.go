package strategy

import (
	"fmt"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// ExitInput is what an exit rule looks at.
type ExitInput struct {
	Bar        types.Bar
	Position   types.Position
	Indicators types.IndicatorSet
}

// ExitRule reports whether the position should close and why.
type ExitRule func(in ExitInput) (reason string, hit bool)

// ExitChain checks its rules in fixed priority order; the first hit wins.
// A nil rule is skipped. Extreme closes everything, the others close the
// position's side.
type ExitChain struct {
	Extreme       ExitRule
	ProfitTarget  ExitRule
	StopLoss      ExitRule
	MaxHold       ExitRule
	MeanReversion ExitRule
}

// Evaluate runs the chain and returns a close signal or None.
func (c ExitChain) Evaluate(in ExitInput) types.Signal {
	if c.Extreme != nil {
		if reason, hit := c.Extreme(in); hit {
			return types.NewSignal(types.DirectionCloseAll, 1, reason, in.Bar, 0, in.Indicators)
		}
	}

	for _, rule := range []ExitRule{c.ProfitTarget, c.StopLoss, c.MaxHold, c.MeanReversion} {
		if rule == nil {
			continue
		}

		if reason, hit := rule(in); hit {
			return types.NewSignal(closeDirection(in.Position.Side), 1, reason, in.Bar, 0, in.Indicators)
		}
	}

	return types.NewNoneSignal("hold", in.Bar)
}

// ProfitTargetRule fires once the position is up by pct.
func ProfitTargetRule(pct float64) ExitRule {
	return func(in ExitInput) (string, bool) {
		profit := in.Position.ProfitPct(in.Bar.Close)
		if profit >= pct {
			return fmt.Sprintf("take profit %.3f%%", profit*100), true
		}

		return "", false
	}
}

// StopLossRule fires once the position is down by pct or its own stop is crossed.
func StopLossRule(pct float64) ExitRule {
	return func(in ExitInput) (string, bool) {
		profit := in.Position.ProfitPct(in.Bar.Close)
		if profit <= -pct || in.Position.StopBreached(in.Bar.Close) {
			return fmt.Sprintf("stop loss %.3f%%", profit*100), true
		}

		return "", false
	}
}

// MaxHoldRule fires once the position has been held for at least d,
// measured on bar timestamps.
func MaxHoldRule(d time.Duration) ExitRule {
	return func(in ExitInput) (string, bool) {
		held := in.Position.HoldingTime(in.Bar.Time)
		if d > 0 && held >= d {
			return fmt.Sprintf("max hold %s", held), true
		}

		return "", false
	}
}

// closeDirection is the signal that closes every position on side.
func closeDirection(side types.Side) types.Direction {
	if side == types.SideLong {
		return types.DirectionCloseLong
	}

	return types.DirectionCloseShort
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// evaluateWith computes indicators for an exit check. Short history still
// allows the price and time based rules to run against an empty set.
func evaluateWith(s Strategy, chain ExitChain, history []types.Bar, index int, position types.Position) (types.Signal, error) {
	indicators, err := s.ComputeIndicators(history, index)
	if err != nil {
		if !warmingUp(err) {
			return types.Signal{}, err
		}

		indicators = types.IndicatorSet{}
	}

	return chain.Evaluate(ExitInput{
		Bar:        history[index],
		Position:   position,
		Indicators: indicators,
	}), nil
}
