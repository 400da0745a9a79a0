package strategy

import (
	"fmt"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/indicator"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/moznion/go-optional"
)

// MARSIHybridParams configures the moving average crossover strategy.
type MARSIHybridParams struct {
	SMAPeriod     int     `yaml:"sma_period" json:"sma_period" validate:"gte=2"`
	EMAPeriod     int     `yaml:"ema_period" json:"ema_period" validate:"gte=2"`
	RSIPeriod     int     `yaml:"rsi_period" json:"rsi_period" validate:"gte=2"`
	RSIThreshold  float64 `yaml:"rsi_threshold" json:"rsi_threshold" validate:"gt=0,lt=100"`
	StopLossPct   float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TakeProfitPct float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0"`
}

// DefaultMARSIHybridParams returns the stock ma_rsi_hybrid settings.
func DefaultMARSIHybridParams() MARSIHybridParams {
	return MARSIHybridParams{
		SMAPeriod:     25,
		EMAPeriod:     10,
		RSIPeriod:     14,
		RSIThreshold:  50,
		StopLossPct:   0.03,
		TakeProfitPct: 0.06,
	}
}

type crossover struct {
	at   time.Time
	side types.Side
}

// MARSIHybrid trades EMA/SMA crossovers confirmed by RSI: a golden cross
// with RSI below the threshold goes long, a death cross above it goes short.
// An opposite cross on the evaluated bar exits.
type MARSIHybrid struct {
	params  MARSIHybridParams
	exits   ExitChain
	prevEMA optional.Option[float64]
	prevSMA optional.Option[float64]
	cross   optional.Option[crossover]
}

// NewMARSIHybrid decodes params onto the defaults.
func NewMARSIHybrid(params map[string]any) (Strategy, error) {
	p := DefaultMARSIHybridParams()
	if err := decodeParams(NameMARSIHybrid, params, &p); err != nil {
		return nil, err
	}

	s := &MARSIHybrid{params: p} //nolint:exhaustruct // trackers reset below
	s.Reset()
	s.exits = ExitChain{
		Extreme:       nil,
		ProfitTarget:  ProfitTargetRule(p.TakeProfitPct),
		StopLoss:      StopLossRule(p.StopLossPct),
		MaxHold:       nil,
		MeanReversion: s.oppositeCross,
	}

	return s, nil
}

func (s *MARSIHybrid) Name() string {
	return NameMARSIHybrid
}

func (s *MARSIHybrid) RequiredLookback() int {
	return max(s.params.SMAPeriod, s.params.EMAPeriod, s.params.RSIPeriod+1)
}

func (s *MARSIHybrid) ComputeIndicators(history []types.Bar, index int) (types.IndicatorSet, error) {
	bars, err := window(history, index, s.RequiredLookback())
	if err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)

	sma, err := indicator.SMA(closes, s.params.SMAPeriod)
	if err != nil {
		return nil, err
	}

	ema, err := indicator.EMA(closes, s.params.EMAPeriod)
	if err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(closes, s.params.RSIPeriod)
	if err != nil {
		return nil, err
	}

	return types.IndicatorSet{
		"price": closes[len(closes)-1],
		"sma":   sma,
		"ema":   ema,
		"rsi":   rsi,
	}, nil
}

func (s *MARSIHybrid) GenerateSignal(history []types.Bar, index int) (types.Signal, error) {
	ind, err := s.ComputeIndicators(history, index)
	if err != nil {
		if warmingUp(err) {
			return types.NewNoneSignal("warming up", history[index]), nil
		}

		return types.Signal{}, err
	}

	bar := history[index]
	ema, sma, rsi := ind["ema"], ind["sma"], ind["rsi"]

	seeded := s.prevEMA.IsSome() && s.prevSMA.IsSome()
	golden, death := false, false

	if seeded {
		prevEMA, prevSMA := s.prevEMA.Unwrap(), s.prevSMA.Unwrap()
		golden = prevEMA <= prevSMA && ema > sma
		death = prevEMA >= prevSMA && ema < sma
	}

	s.prevEMA = optional.Some(ema)
	s.prevSMA = optional.Some(sma)

	switch {
	case golden:
		s.cross = optional.Some(crossover{at: bar.Time, side: types.SideLong})
	case death:
		s.cross = optional.Some(crossover{at: bar.Time, side: types.SideShort})
	}

	threshold := s.params.RSIThreshold

	switch {
	case !seeded:
		return types.NewNoneSignal("initialising moving average trackers", bar), nil
	case golden && rsi < threshold:
		strength := 0.8 + 0.2*(threshold-rsi)/threshold

		return types.NewSignal(types.DirectionLong, strength,
			fmt.Sprintf("golden cross, rsi %.1f", rsi), bar, bar.Close*(1-s.params.StopLossPct), ind), nil
	case death && rsi > threshold:
		strength := 0.8 + 0.2*(rsi-threshold)/threshold

		return types.NewSignal(types.DirectionShort, strength,
			fmt.Sprintf("death cross, rsi %.1f", rsi), bar, bar.Close*(1+s.params.StopLossPct), ind), nil
	default:
		return types.NewNoneSignal("no confirmed crossover", bar), nil
	}
}

func (s *MARSIHybrid) EvaluatePosition(history []types.Bar, index int, position types.Position) (types.Signal, error) {
	return evaluateWith(s, s.exits, history, index, position)
}

func (s *MARSIHybrid) Reset() {
	s.prevEMA = optional.None[float64]()
	s.prevSMA = optional.None[float64]()
	s.cross = optional.None[crossover]()
}

// oppositeCross fires when GenerateSignal saw a cross against the position
// on the bar being evaluated.
func (s *MARSIHybrid) oppositeCross(in ExitInput) (string, bool) {
	if !s.cross.IsSome() {
		return "", false
	}

	c := s.cross.Unwrap()
	if !c.at.Equal(in.Bar.Time) || c.side == in.Position.Side {
		return "", false
	}

	return "opposite crossover", true
}
