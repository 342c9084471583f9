package stats

import "gonum.org/v1/gonum/stat"

// ACF calculates the autocorrelation function of values for lags 0 to
// maxLag. maxLag is capped at len(values)-1. It returns nil for an empty
// input, a negative lag or a constant series.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(values, nil)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}
