package strategy

import (
	"fmt"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/indicator"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// ScalpingParams configures the price action scalper.
type ScalpingParams struct {
	Lookback       int     `yaml:"lookback" json:"lookback" validate:"gte=6"`
	ATRPeriod      int     `yaml:"atr_period" json:"atr_period" validate:"gte=1"`
	EntryThreshold float64 `yaml:"entry_threshold" json:"entry_threshold" validate:"gt=0"`
	VolumeSurge    float64 `yaml:"volume_surge" json:"volume_surge" validate:"gt=0"`
	MinScore       int     `yaml:"min_score" json:"min_score" validate:"gte=1"`
	StopLossPct    float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TakeProfitPct  float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0"`
	MaxHoldSeconds float64 `yaml:"max_hold_seconds" json:"max_hold_seconds" validate:"gte=0"`
}

// DefaultScalpingParams returns the stock scalping settings.
func DefaultScalpingParams() ScalpingParams {
	return ScalpingParams{
		Lookback:       20,
		ATRPeriod:      14,
		EntryThreshold: 0.002,
		VolumeSurge:    1.5,
		MinScore:       1,
		StopLossPct:    0.003,
		TakeProfitPct:  0.005,
		MaxHoldSeconds: 300,
	}
}

// Scalping scores short term momentum, acceleration, volume and range
// position. Exits are purely price and time based.
type Scalping struct {
	params ScalpingParams
	exits  ExitChain
}

// NewScalping decodes params onto the defaults.
func NewScalping(params map[string]any) (Strategy, error) {
	p := DefaultScalpingParams()
	if err := decodeParams(NameScalping, params, &p); err != nil {
		return nil, err
	}

	return &Scalping{
		params: p,
		exits: ExitChain{
			Extreme:       nil,
			ProfitTarget:  ProfitTargetRule(p.TakeProfitPct),
			StopLoss:      StopLossRule(p.StopLossPct),
			MaxHold:       MaxHoldRule(seconds(p.MaxHoldSeconds)),
			MeanReversion: nil,
		},
	}, nil
}

func (s *Scalping) Name() string {
	return NameScalping
}

func (s *Scalping) RequiredLookback() int {
	return max(s.params.Lookback, s.params.ATRPeriod+1)
}

func (s *Scalping) ComputeIndicators(history []types.Bar, index int) (types.IndicatorSet, error) {
	bars, err := window(history, index, s.RequiredLookback())
	if err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	volumes := indicator.Volumes(bars)
	n := len(closes) - 1
	price := closes[n]

	pc1 := closes[n]/closes[n-1] - 1
	prevPC1 := closes[n-1]/closes[n-2] - 1
	pc5 := closes[n]/closes[n-5] - 1

	volumeRatio := 1.0
	if avg := indicator.Mean(volumes[n-s.params.Lookback : n]); avg > 0 {
		volumeRatio = volumes[n] / avg
	}

	atr, err := indicator.ATR(indicator.Highs(bars), indicator.Lows(bars), closes, s.params.ATRPeriod)
	if err != nil {
		return nil, err
	}

	low, high := indicator.Range(closes[n-s.params.Lookback+1:])
	position := 0.5

	if high > low {
		position = (price - low) / (high - low)
	}

	return types.IndicatorSet{
		"price":          price,
		"price_change_1": pc1,
		"price_change_5": pc5,
		"acceleration":   pc1 - prevPC1,
		"volume_ratio":   volumeRatio,
		"atr":            atr,
		"volatility":     atr / price,
		"range_position": position,
	}, nil
}

func (s *Scalping) GenerateSignal(history []types.Bar, index int) (types.Signal, error) {
	ind, err := s.ComputeIndicators(history, index)
	if err != nil {
		if warmingUp(err) {
			return types.NewNoneSignal("warming up", history[index]), nil
		}

		return types.Signal{}, err
	}

	bar := history[index]
	long, short := s.longScore(ind), s.shortScore(ind)
	ind["long_score"] = float64(long)
	ind["short_score"] = float64(short)

	switch {
	case long >= s.params.MinScore && long > short:
		return types.NewSignal(types.DirectionLong, float64(long)/8,
			fmt.Sprintf("momentum long score %d", long), bar, bar.Close*(1-s.params.StopLossPct), ind), nil
	case short >= s.params.MinScore && short > long:
		return types.NewSignal(types.DirectionShort, float64(short)/8,
			fmt.Sprintf("momentum short score %d", short), bar, bar.Close*(1+s.params.StopLossPct), ind), nil
	default:
		return types.NewNoneSignal(fmt.Sprintf("no momentum (long %d, short %d)", long, short), bar), nil
	}
}

func (s *Scalping) longScore(ind types.IndicatorSet) int {
	score := 0
	pc1, pc5 := ind["price_change_1"], ind["price_change_5"]
	vr, vol := ind["volume_ratio"], ind["volatility"]

	if pc1 > s.params.EntryThreshold*0.2 {
		score += 2
	}

	if pc5 > -0.005 {
		score++
	}

	if ind["acceleration"] > 0.0005 {
		score += 2
	}

	switch {
	case vr > s.params.VolumeSurge:
		score += 2
	case vr > 1.05:
		score++
	}

	if vol > 0.0005 {
		score++
	}

	if ind["range_position"] < 0.3 {
		score++
	}

	if pc1 > 0 && pc5 > 0 {
		score += 2
	}

	if pc1 > 0 && vr > 1.3 {
		score++
	}

	if vol < 0.0002 {
		score -= 2
	} else if vol > 0.01 {
		score--
	}

	return score
}

func (s *Scalping) shortScore(ind types.IndicatorSet) int {
	score := 0
	vr := ind["volume_ratio"]

	if ind["price_change_1"] < -s.params.EntryThreshold {
		score += 2
	}

	if ind["price_change_5"] < 0 {
		score++
	}

	if ind["acceleration"] < -0.001 {
		score += 2
	}

	switch {
	case vr > s.params.VolumeSurge:
		score += 2
	case vr > 1.2:
		score++
	}

	if ind["volatility"] > 0.002 {
		score++
	}

	if ind["range_position"] > 0.7 {
		score++
	}

	return score
}

func (s *Scalping) EvaluatePosition(history []types.Bar, index int, position types.Position) (types.Signal, error) {
	return evaluateWith(s, s.exits, history, index, position)
}

func (s *Scalping) Reset() {}
