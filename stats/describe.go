package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics for one series.
type Summary struct {
	N    int
	Mean float64
	Std  float64 // sample standard deviation
	Min  float64
	Max  float64
}

// Describe summarises values. Min and Max are NaN for an empty slice.
func Describe(values []float64) Summary {
	s := Summary{N: len(values), Min: math.NaN(), Max: math.NaN()}
	if len(values) == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	if len(values) < 2 {
		s.Mean = values[0]
		return s
	}

	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	return s
}
