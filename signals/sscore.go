package signals

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gostatarb/regression"
	"github.com/sartorproj/gostatarb/stats"
)

// TradingDaysPerYear is the default annualization factor for kappa.
const TradingDaysPerYear = 252

// Config holds estimation settings.
type Config struct {
	PeriodsPerYear float64 // Observations per year used to annualize kappa (default: 252)
	Workers        int     // Concurrent columns in SScoreParallel (default: GOMAXPROCS)
}

// DefaultConfig returns the default estimation configuration.
func DefaultConfig() *Config {
	return &Config{
		PeriodsPerYear: TradingDaysPerYear,
		Workers:        runtime.GOMAXPROCS(0),
	}
}

// OUParams are the Ornstein-Uhlenbeck parameters implied by an AR(1) fit
// x[t+1] = Intercept + Slope*x[t] + e.
type OUParams struct {
	Slope     float64 // b, lag-1 autoregressive coefficient
	Intercept float64 // a
	Zeta      float64 // population variance of the AR(1) residuals
	Kappa     float64 // annualized mean-reversion speed, -ln(b)*PeriodsPerYear
	Mean      float64 // equilibrium level m = a/(1-b)
	VarEq     float64 // equilibrium standard deviation sqrt(zeta/(1-b^2))
	HalfLife  float64 // ln(2)/kappa, in years
	Method    regression.Method
	NObs      int // length of the series the parameters were fitted on
}

// MeanReverting reports whether the fit describes a proper OU process:
// 0 < b < 1 and a finite, positive equilibrium deviation.
func (p OUParams) MeanReverting() bool {
	return p.Slope > 0 && p.Slope < 1 && p.VarEq > 0 && !math.IsInf(p.VarEq, 0)
}

// Signal returns (x[t] - Mean) / VarEq for every observation of series.
func (p OUParams) Signal(series []float64) []float64 {
	out := make([]float64, len(series))
	for t, v := range series {
		out[t] = (v - p.Mean) / p.VarEq
	}
	return out
}

// EstimateOU fits the AR(1) model to series and maps it to OU parameters.
// A nil config uses DefaultConfig. Degenerate slopes are not guarded: b <= 0
// or b >= 1 yield NaN or Inf in Kappa, Mean and VarEq. A series shorter
// than two observations yields all-NaN parameters.
func EstimateOU(series []float64, config *Config) OUParams {
	periods := float64(TradingDaysPerYear)
	if config != nil && config.PeriodsPerYear > 0 {
		periods = config.PeriodsPerYear
	}

	n := len(series)
	if n < 2 {
		nan := math.NaN()
		return OUParams{
			Slope: nan, Intercept: nan, Zeta: nan, Kappa: nan,
			Mean: nan, VarEq: nan, HalfLife: nan, NObs: n,
		}
	}

	// Regress x[1:] on x[:-1] with an intercept.
	lag := mat.NewDense(n-1, 1, append([]float64(nil), series[:n-1]...))
	lead := mat.NewDense(n-1, 1, append([]float64(nil), series[1:]...))
	design := regression.AddConstant(lag)

	beta, method := regression.Solve(design, lead)
	b, a := beta.At(0, 0), beta.At(1, 0)

	var fitted mat.Dense
	fitted.Mul(design, beta)
	var resid stats.Welford
	for i := 0; i < n-1; i++ {
		resid.Add(lead.At(i, 0) - fitted.At(i, 0))
	}

	zeta := resid.PopVariance()
	kappa := -math.Log(b) * periods

	return OUParams{
		Slope:     b,
		Intercept: a,
		Zeta:      zeta,
		Kappa:     kappa,
		Mean:      a / (1 - b),
		VarEq:     math.Sqrt(zeta / (1 - b*b)),
		HalfLife:  math.Ln2 / kappa,
		Method:    method,
		NObs:      n,
	}
}

// SScoreSeries returns the s-score of every observation of one series.
func SScoreSeries(series []float64) []float64 {
	return EstimateOU(series, nil).Signal(series)
}

// SScore returns the s-score of every column of data. The result has the
// shape of data; each column is estimated on its own values only.
func SScore(data mat.Matrix) *mat.Dense {
	return sscore(data, nil)
}

// SScoreWithConfig is SScore with explicit estimation settings.
func SScoreWithConfig(data mat.Matrix, config *Config) *mat.Dense {
	return sscore(data, config)
}

func sscore(data mat.Matrix, config *Config) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, data)
		out.SetCol(j, EstimateOU(col, config).Signal(col))
	}
	return out
}

// SScoreParallel computes the same matrix as SScoreWithConfig, estimating up
// to config.Workers columns at a time. Each task writes only its own output
// column. It returns ctx.Err() if the context is cancelled first.
func SScoreParallel(ctx context.Context, data mat.Matrix, config *Config) (*mat.Dense, error) {
	if config == nil {
		config = DefaultConfig()
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	src := mat.DenseCopyOf(data)
	r, c := src.Dims()
	out := mat.NewDense(r, c, nil)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j := 0; j < c; j++ {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			col := mat.Col(nil, j, src)
			out.SetCol(j, EstimateOU(col, config).Signal(col))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
