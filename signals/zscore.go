package signals

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gostatarb/stats"
)

// ErrNotImplemented is returned by signals that are declared but not built.
var ErrNotImplemented = errors.New("signals: not implemented")

// ZScore standardizes every column of data by its own mean and population
// standard deviation. A column with zero deviation maps to zeros, and any
// NaN or Inf produced along the way is replaced with 0.
func ZScore(data mat.Matrix) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)

	for j := 0; j < c; j++ {
		mat.Col(col, j, data)
		mean, variance := stats.MeanVariance(col)
		std := math.Sqrt(variance)
		if std == 0 {
			continue
		}
		for i, v := range col {
			z := (v - mean) / std
			if math.IsNaN(z) || math.IsInf(z, 0) {
				z = 0
			}
			out.Set(i, j, z)
		}
	}
	return out
}

// Hurst will compute a rolling Hurst-exponent signal. It always returns
// ErrNotImplemented.
func Hurst(data mat.Matrix) (*mat.Dense, error) {
	return nil, ErrNotImplemented
}
