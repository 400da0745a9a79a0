package indicator

import "math"

// ADXResult is one average directional index reading.
type ADXResult struct {
	ADX     float64
	PlusDI  float64
	MinusDI float64
	// DX is the last directional index before smoothing
	DX float64
}

// ADX computes the average directional index with Wilder smoothing.
// It needs 2*period bars.
func ADX(highs, lows, closes []float64, period int) (ADXResult, error) {
	if err := checkPeriod("ADX", period); err != nil {
		return ADXResult{}, err
	}

	if err := requireLength("ADX", 2*period, len(closes)); err != nil {
		return ADXResult{}, err
	}

	ranges, err := TrueRanges(highs, lows, closes)
	if err != nil {
		return ADXResult{}, err
	}

	plusDM := make([]float64, len(ranges))
	minusDM := make([]float64, len(ranges))

	for i := 1; i < len(closes); i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]

		if up > down && up > 0 {
			plusDM[i-1] = up
		}

		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	p := float64(period)
	tr, pdm, mdm := 0.0, 0.0, 0.0

	for i := 0; i < period; i++ {
		tr += ranges[i]
		pdm += plusDM[i]
		mdm += minusDM[i]
	}

	var (
		result = ADXResult{ADX: 0, PlusDI: 0, MinusDI: 0, DX: 0}
		dxs    = make([]float64, 0, len(ranges)-period+1)
	)

	for i := period - 1; i < len(ranges); i++ {
		if i >= period {
			tr = tr - tr/p + ranges[i]
			pdm = pdm - pdm/p + plusDM[i]
			mdm = mdm - mdm/p + minusDM[i]
		}

		result.PlusDI, result.MinusDI = 0, 0
		if tr > 0 {
			result.PlusDI = 100 * pdm / tr
			result.MinusDI = 100 * mdm / tr
		}

		dx := 0.0
		if sum := result.PlusDI + result.MinusDI; sum > 0 {
			dx = 100 * math.Abs(result.PlusDI-result.MinusDI) / sum
		}

		result.DX = dx
		dxs = append(dxs, dx)
	}

	// dxs has at least period values given 2*period bars
	adx := Mean(dxs[:period])
	for _, dx := range dxs[period:] {
		adx = (adx*(p-1) + dx) / p
	}

	result.ADX = adx

	if err := finite("ADX", result.ADX, result.PlusDI, result.MinusDI); err != nil {
		return ADXResult{}, err
	}

	return result, nil
}
