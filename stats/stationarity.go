package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/gostatarb/regression"
)

// MacKinnon (1994) response surface for the constant-only ADF regression
// with a single series. Coefficients are in ascending powers of tau.
var (
	adfTauMax    = 2.74
	adfTauMin    = -18.83
	adfTauStar   = -1.61
	adfSmallP    = []float64{2.1659, 1.4412, 0.038269}
	adfLargeP    = []float64{1.7339, 0.93202, -0.12745, -0.010368}
	adfCriticals = map[string]float64{
		"1%":  -3.43,
		"5%":  -2.86,
		"10%": -2.57,
	}
)

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	CriticalVals map[string]float64 // Critical values at 1%, 5%, 10%
	IsStationary bool
	Method       regression.Method
}

// ADF performs the Augmented Dickey-Fuller test for a unit root with a
// constant term. The null hypothesis is that the series has a unit root.
// If p-value < 0.05 the null is rejected and the series is considered
// stationary (mean reverting). maxLag <= 0 selects floor((n-1)^(1/3)).
// Returns nil when fewer than 10 usable observations remain.
func ADF(values []float64, maxLag int) *ADFResult {
	n := len(values)
	if n < 10 {
		return nil
	}

	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diff[i-1] = values[i] - values[i-1]
	}

	// delta_y_t = beta*y_{t-1} + sum(gamma_j * delta_y_{t-j}) + alpha
	// Testing beta = 0 (unit root) against beta < 0.
	nObs := n - maxLag - 1
	if nObs < 10 {
		return nil
	}

	k := 2 + maxLag
	x := mat.NewDense(nObs, k, nil)
	y := mat.NewDense(nObs, 1, nil)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y.Set(i, 0, diff[t])
		x.Set(i, 0, values[t]) // lagged level
		for j := 1; j <= maxLag; j++ {
			x.Set(i, j, diff[t-j])
		}
		x.Set(i, k-1, 1)
	}

	res := regression.Fit(x, y)
	if res.StdErrors == nil {
		return nil
	}

	tStat := res.Coef(0) / res.StdErrors[0]
	pValue := mackinnonPValue(tStat)

	criticalVals := make(map[string]float64, len(adfCriticals))
	for level, v := range adfCriticals {
		criticalVals[level] = v
	}

	return &ADFResult{
		Statistic:    tStat,
		PValue:       pValue,
		Lags:         maxLag,
		NObs:         nObs,
		CriticalVals: criticalVals,
		IsStationary: pValue < 0.05,
		Method:       res.Method,
	}
}

// mackinnonPValue maps an ADF statistic to an approximate p-value.
func mackinnonPValue(stat float64) float64 {
	switch {
	case math.IsNaN(stat):
		return math.NaN()
	case stat > adfTauMax:
		return 1
	case stat < adfTauMin:
		return 0
	}

	coeffs := adfLargeP
	if stat <= adfTauStar {
		coeffs = adfSmallP
	}
	return distuv.UnitNormal.CDF(polyval(coeffs, stat))
}

// polyval evaluates coefficients given in ascending powers at x.
func polyval(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}
