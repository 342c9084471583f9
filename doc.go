// Package gostatarb provides mean-reversion signals for statistical
// arbitrage on spread and residual series.
//
// Signals are built on a small least-squares core and follow the
// Avellaneda-Lee treatment of residual returns as Ornstein-Uhlenbeck
// processes.
//
// # Packages
//
//   - regression: OLS through the normal equations with a pseudo-inverse
//     fallback for singular designs
//   - signals: z-score and OU s-score, sequential and parallel
//   - stats: Welford moments, ACF, ADF unit-root test, summaries
//   - timeseries: series, multi-column panels and CSV I/O
//
// # Quick Start
//
// Standardize and score a T x N panel:
//
//	p, _ := timeseries.LoadPanelCSV("spreads.csv", nil)
//	z := signals.ZScore(p.Data)
//	s := signals.SScore(p.Data)
//
// Inspect the OU fit of one column:
//
//	ou := signals.EstimateOU(p.Column(0).Values, nil)
//	if !ou.MeanReverting() {
//	    // slope outside (0, 1), s-scores are NaN or Inf
//	}
//
// Score many columns concurrently:
//
//	s, err := signals.SScoreParallel(ctx, p.Data, &signals.Config{Workers: 8})
//
// # Command Line
//
// cmd/statarb wraps the same operations:
//
//	statarb sscore -i spreads.csv -o sscore.csv --workers 8
//	statarb zscore -i spreads.csv --transform logreturns
//	statarb diagnose -i spreads.csv --format json
package gostatarb
