package indicator

import "math"

// Bands is one Bollinger Bands reading.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
	StdDev float64
	// Width is (Upper - Lower) / Middle
	Width float64
}

// Position is where price sits between the bands, 0 at the lower band and
// 1 at the upper. Collapsed bands read 0.5.
func (b Bands) Position(price float64) float64 {
	if b.Upper == b.Lower {
		return 0.5
	}

	return (price - b.Lower) / (b.Upper - b.Lower)
}

// BollingerBands computes bands over the last period values using the
// population standard deviation.
func BollingerBands(values []float64, period int, stdDev float64) (Bands, error) {
	if err := checkPeriod("BollingerBands", period); err != nil {
		return Bands{}, err
	}

	if err := requireLength("BollingerBands", period, len(values)); err != nil {
		return Bands{}, err
	}

	window := tail(values, period)
	middle := Mean(window)
	sd := StdDev(window)

	bands := Bands{
		Upper:  middle + stdDev*sd,
		Middle: middle,
		Lower:  middle - stdDev*sd,
		StdDev: sd,
		Width:  0,
	}

	if middle != 0 {
		bands.Width = (bands.Upper - bands.Lower) / middle
	}

	if err := finite("BollingerBands", bands.Upper, bands.Lower); err != nil {
		return Bands{}, err
	}

	return bands, nil
}

// StdDev is the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := Mean(values)
	variance := 0.0

	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}

	return math.Sqrt(variance / float64(len(values)))
}
