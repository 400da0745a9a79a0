package indicator

// EMA is the exponential moving average at the last value. It is seeded
// with the SMA of the first period values and smoothed with 2/(period+1).
func EMA(values []float64, period int) (float64, error) {
	series, err := EMASeries(values, period)
	if err != nil {
		return 0, err
	}

	return series[len(series)-1], nil
}

// EMASeries returns the EMA from index period-1 onwards, so the result has
// len(values)-period+1 elements.
func EMASeries(values []float64, period int) ([]float64, error) {
	if err := checkPeriod("EMA", period); err != nil {
		return nil, err
	}

	if err := requireLength("EMA", period, len(values)); err != nil {
		return nil, err
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)

	ema := Mean(values[:period])
	out = append(out, ema)

	for _, v := range values[period:] {
		ema = alpha*v + (1-alpha)*ema
		out = append(out, ema)
	}

	if err := finite("EMA", ema); err != nil {
		return nil, err
	}

	return out, nil
}
