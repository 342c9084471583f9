package stats

// Welford accumulates count, mean and sum of squared deviations using
// Welford's online algorithm. The zero value is ready to use.
type Welford struct {
	n    int
	mean float64
	m2   float64
}

// Add folds v into the running moments.
func (w *Welford) Add(v float64) {
	w.n++
	delta := v - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (v - w.mean)
}

// Count returns the number of values added.
func (w *Welford) Count() int {
	return w.n
}

// Mean returns the running mean, or 0 when empty.
func (w *Welford) Mean() float64 {
	return w.mean
}

// PopVariance returns the population variance (divisor n), or 0 when empty.
func (w *Welford) PopVariance() float64 {
	if w.n == 0 {
		return 0
	}
	return w.m2 / float64(w.n)
}

// Variance returns the sample variance (divisor n-1), or 0 with fewer than
// two values.
func (w *Welford) Variance() float64 {
	if w.n < 2 {
		return 0
	}
	return w.m2 / float64(w.n-1)
}

// MeanVariance returns the mean and population variance of values.
func MeanVariance(values []float64) (mean, popVariance float64) {
	var w Welford
	for _, v := range values {
		w.Add(v)
	}
	return w.Mean(), w.PopVariance()
}
