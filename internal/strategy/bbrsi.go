package strategy

import (
	"fmt"
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/indicator"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// BBRSIParams configures the Bollinger Bands + RSI mean reversion strategy.
type BBRSIParams struct {
	RSIPeriod           int     `yaml:"rsi_period" json:"rsi_period" validate:"gte=2"`
	BBPeriod            int     `yaml:"bb_period" json:"bb_period" validate:"gte=2"`
	BBStdDev            float64 `yaml:"bb_std_dev" json:"bb_std_dev" validate:"gt=0"`
	ADXPeriod           int     `yaml:"adx_period" json:"adx_period" validate:"gte=2"`
	ADXThreshold        float64 `yaml:"adx_threshold" json:"adx_threshold" validate:"gte=0"`
	SqueezeThreshold    float64 `yaml:"squeeze_threshold" json:"squeeze_threshold" validate:"gt=0"`
	MinScore            int     `yaml:"min_score" json:"min_score" validate:"gte=1"`
	StopLossPct         float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	ProfitTargetPct     float64 `yaml:"profit_target_pct" json:"profit_target_pct" validate:"gt=0"`
	MaxHoldSeconds      float64 `yaml:"max_hold_seconds" json:"max_hold_seconds" validate:"gte=0"`
	RSIOverbought       float64 `yaml:"rsi_overbought" json:"rsi_overbought" validate:"gt=50,lte=100"`
	RSIOversold         float64 `yaml:"rsi_oversold" json:"rsi_oversold" validate:"gte=0,lt=50"`
	MiddleBandTolerance float64 `yaml:"middle_band_tolerance" json:"middle_band_tolerance" validate:"gte=0"`
}

// DefaultBBRSIParams returns the stock bbrsi settings.
func DefaultBBRSIParams() BBRSIParams {
	return BBRSIParams{
		RSIPeriod:           14,
		BBPeriod:            20,
		BBStdDev:            2,
		ADXPeriod:           14,
		ADXThreshold:        20,
		SqueezeThreshold:    0.008,
		MinScore:            3,
		StopLossPct:         0.015,
		ProfitTargetPct:     0.0015,
		MaxHoldSeconds:      180,
		RSIOverbought:       80,
		RSIOversold:         20,
		MiddleBandTolerance: 0.001,
	}
}

// BBRSI scores RSI level, band position, RSI momentum, volatility and ADX
// trend for each side and enters when the better side reaches MinScore.
type BBRSI struct {
	params BBRSIParams
	exits  ExitChain
}

// NewBBRSI decodes params onto the defaults.
func NewBBRSI(params map[string]any) (Strategy, error) {
	p := DefaultBBRSIParams()
	if err := decodeParams(NameBBRSI, params, &p); err != nil {
		return nil, err
	}

	s := &BBRSI{params: p} //nolint:exhaustruct // exits set below
	s.exits = ExitChain{
		Extreme:       s.extremeRSI,
		ProfitTarget:  ProfitTargetRule(p.ProfitTargetPct),
		StopLoss:      StopLossRule(p.StopLossPct),
		MaxHold:       MaxHoldRule(seconds(p.MaxHoldSeconds)),
		MeanReversion: s.meanReversion,
	}

	return s, nil
}

func (s *BBRSI) Name() string {
	return NameBBRSI
}

// RequiredLookback covers the bands, RSI at index-1 for momentum, and ADX.
func (s *BBRSI) RequiredLookback() int {
	return max(s.params.BBPeriod, s.params.RSIPeriod+2, 2*s.params.ADXPeriod) - 1
}

func (s *BBRSI) ComputeIndicators(history []types.Bar, index int) (types.IndicatorSet, error) {
	bars, err := window(history, index, s.RequiredLookback())
	if err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	price := closes[len(closes)-1]

	rsi, err := indicator.RSI(closes, s.params.RSIPeriod)
	if err != nil {
		return nil, err
	}

	prevRSI, err := indicator.RSI(closes[:len(closes)-1], s.params.RSIPeriod)
	if err != nil {
		return nil, err
	}

	bands, err := indicator.BollingerBands(closes, s.params.BBPeriod, s.params.BBStdDev)
	if err != nil {
		return nil, err
	}

	adx, err := indicator.ADX(indicator.Highs(bars), indicator.Lows(bars), closes, s.params.ADXPeriod)
	if err != nil {
		return nil, err
	}

	return types.IndicatorSet{
		"price":        price,
		"rsi":          rsi,
		"rsi_prev":     prevRSI,
		"rsi_momentum": rsi - prevRSI,
		"bb_upper":     bands.Upper,
		"bb_middle":    bands.Middle,
		"bb_lower":     bands.Lower,
		"bb_position":  bands.Position(price),
		"volatility":   (bands.Upper - bands.Lower) / price,
		"adx":          adx.ADX,
		"plus_di":      adx.PlusDI,
		"minus_di":     adx.MinusDI,
	}, nil
}

func (s *BBRSI) GenerateSignal(history []types.Bar, index int) (types.Signal, error) {
	ind, err := s.ComputeIndicators(history, index)
	if err != nil {
		if warmingUp(err) {
			return types.NewNoneSignal("warming up", history[index]), nil
		}

		return types.Signal{}, err
	}

	bar := history[index]

	if ind["volatility"] < s.params.SqueezeThreshold*0.1 {
		return types.NewNoneSignal(fmt.Sprintf("volatility squeeze %.5f", ind["volatility"]), bar), nil
	}

	long, short := s.longScore(ind), s.shortScore(ind)
	ind["long_score"] = float64(long)
	ind["short_score"] = float64(short)

	switch {
	case long >= s.params.MinScore && long > short:
		return types.NewSignal(types.DirectionLong, float64(long)/8,
			fmt.Sprintf("long score %d (rsi %.1f, bb %.2f)", long, ind["rsi"], ind["bb_position"]),
			bar, bar.Close*(1-s.params.StopLossPct), ind), nil
	case short >= s.params.MinScore && short > long:
		return types.NewSignal(types.DirectionShort, float64(short)/8,
			fmt.Sprintf("short score %d (rsi %.1f, bb %.2f)", short, ind["rsi"], ind["bb_position"]),
			bar, bar.Close*(1+s.params.StopLossPct), ind), nil
	default:
		return types.NewNoneSignal(fmt.Sprintf("no setup (long %d, short %d)", long, short), bar), nil
	}
}

func (s *BBRSI) longScore(ind types.IndicatorSet) int {
	score := 0
	rsi, bb, vol := ind["rsi"], ind["bb_position"], ind["volatility"]

	switch {
	case rsi < 40:
		score += 3
	case rsi < 50:
		score += 2
	case rsi < 60:
		score++
	}

	switch {
	case bb < 0.3:
		score += 3
	case bb < 0.4:
		score += 2
	case bb < 0.6:
		score++
	}

	switch momentum := ind["rsi_momentum"]; {
	case momentum > 2:
		score += 2
	case momentum > 0:
		score++
	}

	if vol > s.params.SqueezeThreshold*2 {
		score++
	}

	if ind["adx"] > s.params.ADXThreshold && ind["plus_di"] > ind["minus_di"] {
		score += 2
	} else if ind["plus_di"] > ind["minus_di"] {
		score++
	}

	return score + s.penalty(ind)
}

func (s *BBRSI) shortScore(ind types.IndicatorSet) int {
	score := 0
	rsi, bb, vol := ind["rsi"], ind["bb_position"], ind["volatility"]

	switch {
	case rsi > 65:
		score += 3
	case rsi > 60:
		score += 2
	case rsi > 50:
		score++
	}

	switch {
	case bb > 0.8:
		score += 3
	case bb > 0.7:
		score += 2
	case bb > 0.5:
		score++
	}

	switch momentum := ind["rsi_momentum"]; {
	case momentum < -2:
		score += 2
	case momentum < 0:
		score++
	}

	if vol > s.params.SqueezeThreshold*2 {
		score++
	}

	if ind["adx"] > s.params.ADXThreshold && ind["minus_di"] > ind["plus_di"] {
		score += 2
	} else if ind["minus_di"] > ind["plus_di"] {
		score++
	}

	return score + s.penalty(ind)
}

// penalty discounts weak trends and volatility outside the tradeable band.
func (s *BBRSI) penalty(ind types.IndicatorSet) int {
	p := 0
	if ind["adx"] < 15 {
		p -= 2
	}

	if vol := ind["volatility"]; vol > 0.01 || vol < 0.001 {
		p--
	}

	return p
}

func (s *BBRSI) EvaluatePosition(history []types.Bar, index int, position types.Position) (types.Signal, error) {
	return evaluateWith(s, s.exits, history, index, position)
}

func (s *BBRSI) Reset() {}

func (s *BBRSI) extremeRSI(in ExitInput) (string, bool) {
	rsi, ok := in.Indicators["rsi"]
	if !ok {
		return "", false
	}

	if rsi > s.params.RSIOverbought || rsi < s.params.RSIOversold {
		return fmt.Sprintf("extreme rsi %.1f", rsi), true
	}

	return "", false
}

func (s *BBRSI) meanReversion(in ExitInput) (string, bool) {
	middle, ok := in.Indicators["bb_middle"]
	if !ok || middle == 0 {
		return "", false
	}

	if math.Abs(in.Bar.Close-middle)/middle <= s.params.MiddleBandTolerance {
		return "returned to middle band", true
	}

	bb, rsi := in.Indicators["bb_position"], in.Indicators["rsi"]

	if in.Position.Side == types.SideLong {
		if (bb > 0.6 && rsi > 55) || (bb > 0.55 && rsi > 60) || (bb > 0.65 && rsi > 50) {
			return fmt.Sprintf("long reverted (bb %.2f, rsi %.1f)", bb, rsi), true
		}

		return "", false
	}

	if (bb < 0.4 && rsi < 45) || (bb < 0.45 && rsi < 40) || (bb < 0.35 && rsi < 50) {
		return fmt.Sprintf("short reverted (bb %.2f, rsi %.1f)", bb, rsi), true
	}

	return "", false
}
