package indicator

// SMA is the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if err := checkPeriod("SMA", period); err != nil {
		return 0, err
	}

	if err := requireLength("SMA", period, len(values)); err != nil {
		return 0, err
	}

	return Mean(tail(values, period)), nil
}
