package timeseries

import (
	"errors"
	"math"
	"time"
)

// Series represents a single time series with optional timestamps.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values without timestamps.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether every value carries a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Timestamps) > 0 && len(s.Timestamps) == len(s.Values)
}

// Diff calculates the first difference of the series. The result is one
// observation shorter and keeps the timestamps of the later observation.
func (s *Series) Diff() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		result[i-1] = s.Values[i] - s.Values[i-1]
	}

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[1:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name,
	}
}

// Log applies the natural logarithm. Non-positive values become NaN.
func (s *Series) Log() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			result[i] = math.Log(v)
		} else {
			result[i] = math.NaN()
		}
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     result,
		Name:       s.Name,
	}
}

// LogReturns returns log(v[t]) - log(v[t-1]).
func (s *Series) LogReturns() *Series {
	return s.Log().Diff()
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = copyTimestamps(s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name,
	}
}

func copyTimestamps(ts []time.Time) []time.Time {
	if ts == nil {
		return nil
	}
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out
}
