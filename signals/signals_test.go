package signals

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gostatarb/regression"
)

func ar1(n int, a, b, noise float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	values[0] = a / (1 - b)
	for i := 1; i < n; i++ {
		values[i] = a + b*values[i-1] + noise*rng.NormFloat64()
	}
	return values
}

func panel(t *testing.T, columns ...[]float64) *mat.Dense {
	t.Helper()
	rows := len(columns[0])
	m := mat.NewDense(rows, len(columns), nil)
	for j, c := range columns {
		require.Len(t, c, rows)
		m.SetCol(j, c)
	}
	return m
}

// sameFloat treats NaN as equal to NaN.
func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func assertSameMatrix(t *testing.T, want, got mat.Matrix) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr)
	require.Equal(t, wc, gc)
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			assert.Truef(t, sameFloat(want.At(i, j), got.At(i, j)),
				"(%d,%d): want %v, got %v", i, j, want.At(i, j), got.At(i, j))
		}
	}
}

func TestZScoreKnownColumn(t *testing.T) {
	data := panel(t, []float64{2, 4, 4, 4, 5, 5, 7, 9})

	z := ZScore(data)

	// mean 5, population std 2
	want := []float64{-1.5, -0.5, -0.5, -0.5, 0, 0, 1, 2}
	for i, w := range want {
		assert.InDelta(t, w, z.At(i, 0), 1e-12)
	}
}

func TestZScoreColumnsAreIndependent(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	scaled := []float64{10, 20, 30, 40, 50}
	data := panel(t, x, scaled)

	z := ZScore(data)

	for i := range x {
		assert.InDelta(t, z.At(i, 0), z.At(i, 1), 1e-12, "z-score is scale invariant")
	}
	assert.InDelta(t, 0.0, mat.Sum(z.ColView(0)), 1e-12)
}

func TestZScoreConstantColumn(t *testing.T) {
	data := panel(t,
		[]float64{5, 5, 5, 5, 5},
		[]float64{0.1, 0.1, 0.1, 0.1, 0.1},
		[]float64{1, 2, 3, 4, 5},
	)

	z := ZScore(data)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.0, z.At(i, 0))
		assert.Equal(t, 0.0, z.At(i, 1))
	}
	assert.InDelta(t, -math.Sqrt2, z.At(0, 2), 1e-12)
}

func TestZScoreNonFiniteBecomesZero(t *testing.T) {
	data := panel(t, []float64{1, math.NaN(), 3}, []float64{1, math.Inf(1), 3})

	z := ZScore(data)

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			v := z.At(i, j)
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "(%d,%d) = %v", i, j, v)
		}
	}
}

func TestEstimateOUMeanRevertingSeries(t *testing.T) {
	series := ar1(1000, 0.5, 0.8, 0.1, 7)

	p := EstimateOU(series, nil)

	assert.InDelta(t, 0.8, p.Slope, 0.08)
	assert.InDelta(t, 2.5, p.Mean, 0.1)
	assert.InDelta(t, 0.01, p.Zeta, 0.002)
	assert.True(t, p.MeanReverting())
	assert.Equal(t, regression.MethodInverse, p.Method)
	assert.Equal(t, 1000, p.NObs)

	assert.InDelta(t, -math.Log(p.Slope)*TradingDaysPerYear, p.Kappa, 1e-9)
	assert.InDelta(t, p.Intercept/(1-p.Slope), p.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(p.Zeta/(1-p.Slope*p.Slope)), p.VarEq, 1e-12)
	assert.InDelta(t, math.Ln2/p.Kappa, p.HalfLife, 1e-12)

	s := p.Signal(series)
	require.Len(t, s, len(series))
	for i, v := range s {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "s[%d] = %v", i, v)
		assert.InDelta(t, (series[i]-p.Mean)/p.VarEq, v, 1e-12)
	}
}

func TestEstimateOUPeriodsPerYear(t *testing.T) {
	series := ar1(300, 0, 0.5, 1, 3)

	daily := EstimateOU(series, nil)
	hourly := EstimateOU(series, &Config{PeriodsPerYear: 252 * 24})

	assert.InDelta(t, daily.Kappa*24, hourly.Kappa, 1e-9)
	assert.Equal(t, daily.Mean, hourly.Mean)
	assert.Equal(t, daily.VarEq, hourly.VarEq)
}

func TestEstimateOULinearTrend(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	p := EstimateOU(series, nil)

	assert.InDelta(t, 1.0, p.Slope, 1e-8)
	assert.InDelta(t, 1.0, p.Intercept, 1e-7)

	s := SScoreSeries(series)
	require.Len(t, s, 10)
	for i, v := range s {
		assert.True(t, sameFloat((series[i]-p.Mean)/p.VarEq, v), "s[%d] = %v", i, v)
	}
}

func TestEstimateOUShortSeries(t *testing.T) {
	for _, series := range [][]float64{nil, {3}} {
		p := EstimateOU(series, nil)
		assert.True(t, math.IsNaN(p.Slope))
		assert.True(t, math.IsNaN(p.VarEq))
		assert.False(t, p.MeanReverting())
		assert.Equal(t, len(series), p.NObs)
	}

	s := SScoreSeries([]float64{3})
	require.Len(t, s, 1)
	assert.True(t, math.IsNaN(s[0]))
}

func TestSScoreConstantColumnIsNonFinite(t *testing.T) {
	data := panel(t,
		[]float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
		ar1(10, 0, 0.5, 1, 1),
	)

	var s *mat.Dense
	require.NotPanics(t, func() { s = SScore(data) })

	// X'X is singular for a constant regressor, so the fit goes through pinv
	// and the residuals vanish exactly.
	p := EstimateOU(mat.Col(nil, 0, data), nil)
	assert.Equal(t, regression.MethodPseudoInverse, p.Method)
	assert.Equal(t, 0.0, p.Zeta)
	assert.Equal(t, 0.0, p.VarEq)
	assert.InDelta(t, 25.0/26.0, p.Slope, 1e-9)

	for i := 0; i < 10; i++ {
		v := s.At(i, 0)
		assert.True(t, math.IsNaN(v) || math.IsInf(v, 0), "s[%d] = %v", i, v)
	}
}

func TestSScoreShapeAndColumnIndependence(t *testing.T) {
	a := ar1(120, 0.2, 0.6, 0.5, 11)
	b := ar1(120, -1, 0.9, 2, 12)
	c := ar1(120, 0, 0.3, 0.1, 13)

	s := SScore(panel(t, a, b, c))

	rows, cols := s.Dims()
	assert.Equal(t, 120, rows)
	assert.Equal(t, 3, cols)

	for j, col := range [][]float64{a, b, c} {
		want := SScoreSeries(col)
		for i := range want {
			assert.True(t, sameFloat(want[i], s.At(i, j)), "(%d,%d)", i, j)
		}
	}

	// Changing one column leaves the others untouched.
	other := SScore(panel(t, a, ar1(120, 5, 0.1, 3, 99), c))
	for i := 0; i < rows; i++ {
		assert.Equal(t, s.At(i, 0), other.At(i, 0))
		assert.Equal(t, s.At(i, 2), other.At(i, 2))
	}
}

func TestSScoreParallelMatchesSequential(t *testing.T) {
	columns := make([][]float64, 0, 9)
	for j := 0; j < 8; j++ {
		columns = append(columns, ar1(200, float64(j)*0.1, 0.1*float64(j+1), 1, int64(j)))
	}
	columns = append(columns, make([]float64, 200)) // constant zeros
	data := panel(t, columns...)

	want := SScore(data)

	for _, workers := range []int{0, 1, 3, 16} {
		got, err := SScoreParallel(context.Background(), data, &Config{Workers: workers})
		require.NoError(t, err)
		assertSameMatrix(t, want, got)
	}

	got, err := SScoreParallel(context.Background(), data, nil)
	require.NoError(t, err)
	assertSameMatrix(t, want, got)
}

func TestSScoreParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := panel(t, ar1(50, 0, 0.5, 1, 1), ar1(50, 0, 0.5, 1, 2))
	_, err := SScoreParallel(ctx, data, &Config{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSScoreWithConfig(t *testing.T) {
	data := panel(t, ar1(100, 0, 0.5, 1, 5))

	assertSameMatrix(t, SScore(data), SScoreWithConfig(data, DefaultConfig()))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, float64(TradingDaysPerYear), cfg.PeriodsPerYear)
	assert.Positive(t, cfg.Workers)
}
