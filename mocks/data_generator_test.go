package mocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataGeneratorProducesValidBars(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Count = 500

	bars := NewDataGenerator(42).Generate(config)
	require.Len(t, bars, 500)

	for i, bar := range bars {
		require.NoError(t, bar.Validate(), "bar %d", i)
		assert.Equal(t, config.Symbol, bar.Symbol)

		if i > 0 {
			assert.Equal(t, config.Interval, bar.Time.Sub(bars[i-1].Time))
		}
	}
}

func TestDataGeneratorIsReproducible(t *testing.T) {
	first := GenerateBars(7, 200)
	second := GenerateBars(7, 200)
	other := GenerateBars(8, 200)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestDataGeneratorDrift(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Count = 300
	config.Volatility = 0.0001
	config.Drift = 0.001

	bars := NewDataGenerator(1).Generate(config)
	assert.Greater(t, bars[len(bars)-1].Close, bars[0].Open)
}
