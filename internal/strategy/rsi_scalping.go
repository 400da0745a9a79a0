package strategy

import (
	"fmt"
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/indicator"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/moznion/go-optional"
)

// RSIScalpingParams configures the RSI threshold scalper.
type RSIScalpingParams struct {
	RSIPeriod     int     `yaml:"rsi_period" json:"rsi_period" validate:"gte=2"`
	Oversold      float64 `yaml:"oversold" json:"oversold" validate:"gt=0,lt=50"`
	Overbought    float64 `yaml:"overbought" json:"overbought" validate:"gt=50,lt=100"`
	ExitLong      float64 `yaml:"exit_long" json:"exit_long" validate:"gt=0,lt=100"`
	ExitShort     float64 `yaml:"exit_short" json:"exit_short" validate:"gt=0,lt=100"`
	StopLossPct   float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TakeProfitPct float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0"`
}

// DefaultRSIScalpingParams returns the stock rsi_scalping settings.
func DefaultRSIScalpingParams() RSIScalpingParams {
	return RSIScalpingParams{
		RSIPeriod:     14,
		Oversold:      35,
		Overbought:    65,
		ExitLong:      45,
		ExitShort:     55,
		StopLossPct:   0.01,
		TakeProfitPct: 0.015,
	}
}

// RSIScalping goes long below Oversold and short above Overbought, and
// exits once RSI returns towards neutral.
type RSIScalping struct {
	params  RSIScalpingParams
	exits   ExitChain
	prevRSI optional.Option[float64]
}

// NewRSIScalping decodes params onto the defaults.
func NewRSIScalping(params map[string]any) (Strategy, error) {
	p := DefaultRSIScalpingParams()
	if err := decodeParams(NameRSIScalping, params, &p); err != nil {
		return nil, err
	}

	s := &RSIScalping{params: p, prevRSI: optional.None[float64]()} //nolint:exhaustruct // exits set below
	s.exits = ExitChain{
		Extreme:       nil,
		ProfitTarget:  ProfitTargetRule(p.TakeProfitPct),
		StopLoss:      StopLossRule(p.StopLossPct),
		MaxHold:       nil,
		MeanReversion: s.neutralRSI,
	}

	return s, nil
}

func (s *RSIScalping) Name() string {
	return NameRSIScalping
}

func (s *RSIScalping) RequiredLookback() int {
	return s.params.RSIPeriod + 5
}

func (s *RSIScalping) ComputeIndicators(history []types.Bar, index int) (types.IndicatorSet, error) {
	bars, err := window(history, index, s.RequiredLookback())
	if err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(indicator.Closes(bars), s.params.RSIPeriod)
	if err != nil {
		return nil, err
	}

	return types.IndicatorSet{
		"price": bars[len(bars)-1].Close,
		"rsi":   rsi,
	}, nil
}

// GenerateSignal needs one evaluated bar to seed the previous RSI tracker;
// that first bar always yields None.
func (s *RSIScalping) GenerateSignal(history []types.Bar, index int) (types.Signal, error) {
	ind, err := s.ComputeIndicators(history, index)
	if err != nil {
		if warmingUp(err) {
			return types.NewNoneSignal("warming up", history[index]), nil
		}

		return types.Signal{}, err
	}

	bar := history[index]
	rsi := ind["rsi"]

	seeded := s.prevRSI.IsSome()
	if seeded {
		ind["rsi_prev"] = s.prevRSI.Unwrap()
	}

	s.prevRSI = optional.Some(rsi)

	if !seeded {
		return types.NewNoneSignal("initialising rsi tracker", bar), nil
	}

	switch {
	case rsi < s.params.Oversold:
		return types.NewSignal(types.DirectionLong, math.Min(1, (s.params.Oversold-rsi)/20),
			fmt.Sprintf("rsi oversold %.1f", rsi), bar, bar.Close*(1-s.params.StopLossPct), ind), nil
	case rsi > s.params.Overbought:
		return types.NewSignal(types.DirectionShort, math.Min(1, (rsi-s.params.Overbought)/20),
			fmt.Sprintf("rsi overbought %.1f", rsi), bar, bar.Close*(1+s.params.StopLossPct), ind), nil
	default:
		return types.NewNoneSignal(fmt.Sprintf("rsi neutral %.1f", rsi), bar), nil
	}
}

func (s *RSIScalping) EvaluatePosition(history []types.Bar, index int, position types.Position) (types.Signal, error) {
	return evaluateWith(s, s.exits, history, index, position)
}

func (s *RSIScalping) Reset() {
	s.prevRSI = optional.None[float64]()
}

func (s *RSIScalping) neutralRSI(in ExitInput) (string, bool) {
	rsi, ok := in.Indicators["rsi"]
	if !ok {
		return "", false
	}

	if in.Position.Side == types.SideLong && rsi >= s.params.ExitLong {
		return fmt.Sprintf("rsi back to %.1f", rsi), true
	}

	if in.Position.Side == types.SideShort && rsi <= s.params.ExitShort {
		return fmt.Sprintf("rsi back to %.1f", rsi), true
	}

	return "", false
}
