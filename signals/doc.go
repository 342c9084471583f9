// Package signals computes mean-reversion trading signals for pairs and
// basket statistical arbitrage.
//
// Input is a T x N matrix of residual or spread series (rows are time steps,
// columns are series). Every function returns a matrix of the same shape and
// treats columns independently.
//
// # Z-Score
//
// ZScore standardizes each column by its own mean and population standard
// deviation. Constant columns come out as zeros, never NaN:
//
//	z := signals.ZScore(data)
//
// # S-Score
//
// SScore fits an AR(1) model x[t+1] = a + b*x[t] + e by OLS on every column,
// reads it as a discretely sampled Ornstein-Uhlenbeck process and returns
// the distance from the equilibrium mean in units of the equilibrium
// standard deviation:
//
//	kappa  = -ln(b) * 252
//	m      = a / (1 - b)
//	sigma  = sqrt(var(e) / (1 - b^2))
//	s[t]   = (x[t] - m) / sigma
//
// The s-score is evaluated on every input observation, so the output
// keeps all T rows even though the regression uses T-1 pairs.
//
//	s := signals.SScore(data)
//
//	// Parameters of one column
//	ou := signals.EstimateOU(mat.Col(nil, 0, data), nil)
//	fmt.Printf("kappa=%.2f half-life=%.3fy\n", ou.Kappa, ou.HalfLife)
//
// A slope outside (0, 1) has no OU interpretation. Such columns are not
// clamped: the logarithm and square root produce NaN or Inf, which flows
// into the signal for the caller to handle. OUParams.MeanReverting reports
// whether a fit is usable.
//
// # Concurrency
//
// All functions are pure. SScoreParallel fans the columns out over a
// bounded number of goroutines and returns the same matrix as SScore.
//
// # Hurst Exponent
//
// Hurst is reserved for a rolling Hurst-exponent signal and currently
// returns ErrNotImplemented.
package signals
