package strategy

import (
	"fmt"
	"math"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/indicator"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// EnsembleWeights weight each predictor in the combined score.
type EnsembleWeights struct {
	Momentum float64 `yaml:"momentum" json:"momentum" validate:"gte=0"`
	Neural   float64 `yaml:"neural" json:"neural" validate:"gte=0"`
	Features float64 `yaml:"features" json:"features" validate:"gte=0"`
	Volume   float64 `yaml:"volume" json:"volume" validate:"gte=0"`
}

// SuperOptimizedParams configures the weighted ensemble.
type SuperOptimizedParams struct {
	Lookback       int             `yaml:"lookback" json:"lookback" validate:"gte=10"`
	RSIPeriod      int             `yaml:"rsi_period" json:"rsi_period" validate:"gte=2"`
	Weights        EnsembleWeights `yaml:"weights" json:"weights"`
	Threshold      float64         `yaml:"threshold" json:"threshold" validate:"gt=0"`
	StopLossPct    float64         `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TakeProfitPct  float64         `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0"`
	MaxHoldSeconds float64         `yaml:"max_hold_seconds" json:"max_hold_seconds" validate:"gte=0"`
}

// DefaultSuperOptimizedParams returns the stock super_optimized settings.
func DefaultSuperOptimizedParams() SuperOptimizedParams {
	return SuperOptimizedParams{
		Lookback:  20,
		RSIPeriod: 14,
		Weights: EnsembleWeights{
			Momentum: 0.3,
			Neural:   0.25,
			Features: 0.25,
			Volume:   0.2,
		},
		Threshold:      0.2,
		StopLossPct:    0.004,
		TakeProfitPct:  0.012,
		MaxHoldSeconds: 600,
	}
}

// neural input weights, applied to inputs already clamped to [-1, 1]
var neuralWeights = [8]float64{0.2, 0.15, 0.15, 0.1, 0.1, 0.1, 0.1, 0.1}

// SuperOptimized combines four predictors, each scoring in [-1, 1] with
// negative meaning short bias. The weighted positive and negative sums
// compete against Threshold; an exact tie is no trade.
type SuperOptimized struct {
	params SuperOptimizedParams
	exits  ExitChain
}

// NewSuperOptimized decodes params onto the defaults.
func NewSuperOptimized(params map[string]any) (Strategy, error) {
	p := DefaultSuperOptimizedParams()
	if err := decodeParams(NameSuperOptimized, params, &p); err != nil {
		return nil, err
	}

	return &SuperOptimized{
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

func (s *SuperOptimized) Name() string {
	return NameSuperOptimized
}

func (s *SuperOptimized) RequiredLookback() int {
	return max(s.params.Lookback, s.params.RSIPeriod+1)
}

func (s *SuperOptimized) ComputeIndicators(history []types.Bar, index int) (types.IndicatorSet, error) {
	bars, err := window(history, index, s.RequiredLookback())
	if err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	volumes := indicator.Volumes(bars)
	n := len(closes) - 1
	price := closes[n]
	lookback := s.params.Lookback

	momentum := func(k int) float64 { return closes[n]/closes[n-k] - 1 }
	m1, m3, m5, m10 := momentum(1), momentum(3), momentum(5), momentum(10)

	volumeRatio := 1.0
	if avg := indicator.Mean(volumes[n-lookback : n]); avg > 0 {
		volumeRatio = volumes[n] / avg
	}

	volumeMomentum := 0.0
	if volumes[n-5] > 0 {
		volumeMomentum = volumes[n]/volumes[n-5] - 1
	}

	low10, high10 := indicator.Range(closes[n-9:])
	low, high := indicator.Range(closes[n-lookback+1:])

	position := 0.5
	if high > low {
		position = (price - low) / (high - low)
	}

	rsi, err := indicator.RSI(closes, s.params.RSIPeriod)
	if err != nil {
		return nil, err
	}

	ind := types.IndicatorSet{
		"price":           price,
		"momentum_1":      m1,
		"momentum_3":      m3,
		"momentum_5":      m5,
		"momentum_10":     m10,
		"volume_ratio":    volumeRatio,
		"volume_momentum": volumeMomentum,
		"volatility":      (high10 - low10) / price,
		"trend":           indicator.LinearRegressionSlope(closes[n-lookback+1:]) / price,
		"acceleration":    m1 - m3,
		"range_position":  position,
		"rsi":             rsi,
		"rsi_momentum":    (rsi - 50) / 50,
	}

	ind["pred_momentum"] = momentumPredictor(ind)
	ind["pred_neural"] = neuralPredictor(ind)
	ind["pred_features"] = featuresPredictor(ind)
	ind["pred_volume"] = volumePredictor(ind)

	return ind, nil
}

func (s *SuperOptimized) GenerateSignal(history []types.Bar, index int) (types.Signal, error) {
	ind, err := s.ComputeIndicators(history, index)
	if err != nil {
		if warmingUp(err) {
			return types.NewNoneSignal("warming up", history[index]), nil
		}

		return types.Signal{}, err
	}

	bar := history[index]
	w := s.params.Weights

	direction, long, short := combine(
		[]float64{ind["pred_momentum"], ind["pred_neural"], ind["pred_features"], ind["pred_volume"]},
		[]float64{w.Momentum, w.Neural, w.Features, w.Volume},
		s.params.Threshold,
	)
	ind["long_score"] = long
	ind["short_score"] = short

	switch direction {
	case types.DirectionLong:
		return types.NewSignal(direction, long, fmt.Sprintf("ensemble long %.3f vs %.3f", long, short),
			bar, bar.Close*(1-s.params.StopLossPct), ind), nil
	case types.DirectionShort:
		return types.NewSignal(direction, short, fmt.Sprintf("ensemble short %.3f vs %.3f", short, long),
			bar, bar.Close*(1+s.params.StopLossPct), ind), nil
	default:
		return types.NewNoneSignal(fmt.Sprintf("ensemble below threshold (long %.3f, short %.3f)", long, short), bar), nil
	}
}

func (s *SuperOptimized) EvaluatePosition(history []types.Bar, index int, position types.Position) (types.Signal, error) {
	return evaluateWith(s, s.exits, history, index, position)
}

func (s *SuperOptimized) Reset() {}

// combine splits the weighted predictor scores into long and short sums.
// The larger side wins if it reaches threshold; equal sums are no trade.
func combine(scores, weights []float64, threshold float64) (direction types.Direction, long, short float64) {
	for i, score := range scores {
		score = clamp(score)
		if score > 0 {
			long += score * weights[i]
		} else {
			short += -score * weights[i]
		}
	}

	switch {
	case long >= threshold && long > short:
		return types.DirectionLong, long, short
	case short >= threshold && short > long:
		return types.DirectionShort, long, short
	default:
		return types.DirectionNone, long, short
	}
}

// momentumPredictor blends multi-horizon returns, ignoring noise below 3 bps.
func momentumPredictor(ind types.IndicatorSet) float64 {
	score := 0.5*ind["momentum_1"] + 0.3*ind["momentum_3"] + 0.15*ind["momentum_5"] + 0.05*ind["momentum_10"]
	if math.Abs(score) <= 0.0003 {
		return 0
	}

	return clamp(score * 10)
}

// neuralPredictor is a single sigmoid unit over scaled features, mapped to [-1, 1].
func neuralPredictor(ind types.IndicatorSet) float64 {
	inputs := [8]float64{
		ind["momentum_1"] * 100,
		ind["momentum_3"] * 50,
		ind["momentum_5"] * 20,
		ind["trend"] * 1000,
		ind["volume_ratio"] - 1,
		ind["rsi_momentum"],
		ind["acceleration"] * 100,
		(ind["range_position"] - 0.5) * 2,
	}

	z := 0.0
	for i, x := range inputs {
		z += neuralWeights[i] * clamp(x)
	}

	return 2/(1+math.Exp(-8*z)) - 1
}

// featuresPredictor rates how strong the current move is and signs it by
// the short term direction.
func featuresPredictor(ind types.IndicatorSet) float64 {
	direction := ind["momentum_1"] + ind["momentum_3"]
	if direction == 0 {
		return 0
	}

	strength := 0.4*math.Min(1, math.Abs(ind["momentum_3"])*100) +
		0.3*math.Min(1, ind["volatility"]*50) +
		0.3*math.Abs(ind["range_position"]-0.5)*2

	return clamp(math.Copysign(strength, direction))
}

// volumePredictor rewards volume expansion in the direction of the last bar.
func volumePredictor(ind types.IndicatorSet) float64 {
	m1 := ind["momentum_1"]
	if m1 == 0 {
		return 0
	}

	strength := 0.7*math.Min(1, ind["volume_ratio"]/1.5) + 0.3*math.Min(1, math.Abs(ind["volume_momentum"])*10)

	return clamp(math.Copysign(strength, m1))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	return math.Max(-1, math.Min(1, v))
}
