// Package stats provides the statistical building blocks used around the
// signal estimators.
//
// # Running Moments
//
// Welford accumulates a mean and variance in one pass. Identical inputs
// give a variance of exactly zero, which the z-score and s-score code rely
// on to recognise degenerate series:
//
//	var w stats.Welford
//	for _, v := range values {
//	    w.Add(v)
//	}
//	mean, popVar := w.Mean(), w.PopVariance()
//
//	// Or in one call
//	mean, popVar = stats.MeanVariance(values)
//
// # Autocorrelation
//
//	acf := stats.ACF(values, 20)
//	rho1 := acf[1] // lag-1 autocorrelation
//
// # Stationarity
//
// The Augmented Dickey-Fuller test checks whether a spread is mean
// reverting before its s-score is trusted:
//
//	// H0: series has a unit root (non-stationary)
//	adf := stats.ADF(values, 0)
//	if adf != nil && adf.IsStationary {
//	    // reject the unit root at 5%
//	}
//
// # Summaries
//
//	s := stats.Describe(values)
//	fmt.Printf("n=%d mean=%.4f std=%.4f\n", s.N, s.Mean, s.Std)
package stats
