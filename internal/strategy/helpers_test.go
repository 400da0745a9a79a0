package strategy

import (
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// barsFromCloses builds one minute bars with a fixed spread around each close.
func barsFromCloses(closes []float64, spread float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: "BTC",
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + spread,
			Low:    c - spread,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}

	return out
}

func geometric(n int, start, rate float64) []float64 {
	out := make([]float64, n)
	value := start

	for i := range out {
		out[i] = value
		value *= 1 + rate
	}

	return out
}

func flat(n int, value float64) []float64 {
	return linear(n, value, 0)
}

// alternating oscillates between base and base+step.
func alternating(n int, base, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + step*float64(i%2)
	}

	return out
}

func openPosition(side types.Side, entry float64, at time.Time) types.Position {
	return types.Position{
		ID:         "pos_test",
		Symbol:     "BTC",
		Side:       side,
		EntryPrice: entry,
		EntryTime:  at,
		Size:       1,
		Notional:   entry,
		StopLoss:   0,
		Status:     types.PositionStatusOpen,
	}
}
