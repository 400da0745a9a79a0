package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// DataGenerator produces reproducible OHLCV bars for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator seeds the generator. The same seed always yields the
// same bars.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig shapes the generated series.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	Interval  time.Duration
	Count     int
	// InitialPrice is the first open
	InitialPrice float64
	// Volatility is the per bar standard deviation of returns (0.002 = 0.2%)
	Volatility float64
	// Drift is the mean per bar return
	Drift float64
	// VolumeBase is the mean volume per bar
	VolumeBase float64
	// VolumeVariance is the relative spread of volume in [0, 1]
	VolumeVariance float64
}

// DefaultGeneratorConfig returns a neutral one minute BTC series.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "BTC",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          1000,
		InitialPrice:   100,
		Volatility:     0.004,
		Drift:          0,
		VolumeBase:     1000,
		VolumeVariance: 0.5,
	}
}

// Generate walks a geometric Brownian motion and wraps each step in a bar
// whose high and low enclose open and close.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	price := config.InitialPrice
	at := config.StartTime

	for i := range bars {
		open := price

		close := open * math.Exp(config.Drift+config.Volatility*g.normal())
		high := math.Max(open, close) * (1 + g.rng.Float64()*config.Volatility*0.5)
		low := math.Min(open, close) * (1 - g.rng.Float64()*config.Volatility*0.5)

		volume := config.VolumeBase * (1 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = 0
		}

		bars[i] = types.Bar{
			Symbol: config.Symbol,
			Time:   at,
			Open:   round(open, 4),
			High:   round(high, 4),
			Low:    round(low, 4),
			Close:  round(close, 4),
			Volume: round(volume, 2),
		}

		price = close
		at = at.Add(config.Interval)
	}

	return bars
}

// normal draws a standard normal value using Box-Muller.
func (g *DataGenerator) normal() float64 {
	u1 := 1 - g.rng.Float64()
	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// GenerateBars is Generate on DefaultGeneratorConfig with count bars.
func GenerateBars(seed int64, count int) []types.Bar {
	config := DefaultGeneratorConfig()
	config.Count = count

	return NewDataGenerator(seed).Generate(config)
}

func round(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
