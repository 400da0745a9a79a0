package indicator

// RSI is the relative strength index at the last value using Wilder
// smoothing. It needs period+1 values. A series with no losses reads 100;
// a completely flat series reads 50.
func RSI(values []float64, period int) (float64, error) {
	if err := checkPeriod("RSI", period); err != nil {
		return 0, err
	}

	if err := requireLength("RSI", period+1, len(values)); err != nil {
		return 0, err
	}

	avgGain, avgLoss := 0.0, 0.0

	for i := 1; i <= period; i++ {
		gain, loss := change(values[i-1], values[i])
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(values); i++ {
		gain, loss := change(values[i-1], values[i])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50, nil
	case avgLoss == 0:
		return 100, nil
	}

	rsi := 100 - 100/(1+avgGain/avgLoss)
	if err := finite("RSI", rsi); err != nil {
		return 0, err
	}

	return rsi, nil
}

func change(prev, cur float64) (gain, loss float64) {
	diff := cur - prev
	if diff > 0 {
		return diff, 0
	}

	return 0, -diff
}
