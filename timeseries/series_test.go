package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func days(n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := make([]time.Time, n)
	for i := range ts {
		ts[i] = base.AddDate(0, 0, i)
	}
	return ts
}

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, values, s.Values)
	assert.False(t, s.HasTimestamps())
}

func TestNewWithTimestamps(t *testing.T) {
	s, err := NewWithTimestamps(days(3), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, s.HasTimestamps())

	_, err = NewWithTimestamps(days(2), []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	s, err := NewWithTimestamps(days(4), []float64{1, 4, 9, 16})
	require.NoError(t, err)
	s.Name = "sq"

	d := s.Diff()
	assert.Equal(t, []float64{3, 5, 7}, d.Values)
	assert.Equal(t, "sq", d.Name)
	require.Len(t, d.Timestamps, 3)
	assert.Equal(t, s.Timestamps[1], d.Timestamps[0], "diff keeps the later timestamp")

	assert.Equal(t, 0, New([]float64{1}).Diff().Len())
}

func TestLogAndLogReturns(t *testing.T) {
	s := New([]float64{1, math.E, math.E * math.E, 0})

	l := s.Log()
	assert.InDelta(t, 0.0, l.Values[0], 1e-12)
	assert.InDelta(t, 1.0, l.Values[1], 1e-12)
	assert.True(t, math.IsNaN(l.Values[3]), "log of zero is NaN")

	r := s.LogReturns()
	require.Equal(t, 3, r.Len())
	assert.InDelta(t, 1.0, r.Values[0], 1e-12)
	assert.InDelta(t, 1.0, r.Values[1], 1e-12)
	assert.True(t, math.IsNaN(r.Values[2]))
}

func TestSliceAndCopy(t *testing.T) {
	s, err := NewWithTimestamps(days(5), []float64{10, 20, 30, 40, 50})
	require.NoError(t, err)

	sub := s.Slice(1, 3)
	assert.Equal(t, []float64{20, 30}, sub.Values)
	assert.Equal(t, s.Timestamps[1:3], sub.Timestamps)

	assert.Equal(t, 5, s.Slice(-3, 100).Len(), "bounds are clamped")
	assert.Equal(t, 0, s.Slice(3, 1).Len())

	c := s.Copy()
	c.Values[0] = -1
	assert.Equal(t, 10.0, s.Values[0], "copy is deep")
}

func TestPanelFromSeries(t *testing.T) {
	a, _ := NewWithTimestamps(days(3), []float64{1, 2, 3})
	a.Name = "a"
	b := New([]float64{4, 5, 6})
	b.Name = "b"

	p, err := PanelFromSeries(a, b)
	require.NoError(t, err)

	rows, cols := p.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []string{"a", "b"}, p.Names)
	assert.Len(t, p.Timestamps, 3)
	assert.Equal(t, 5.0, p.Data.At(1, 1))

	col, err := p.ColumnByName("b")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, col.Values)
	assert.True(t, col.HasTimestamps())

	_, err = p.ColumnByName("missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	short := New([]float64{1})
	_, err = PanelFromSeries(a, short)
	assert.ErrorIs(t, err, ErrShape)

	_, err = PanelFromSeries()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNewPanelValidation(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := NewPanel([]string{"only"}, nil, data)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewPanel([]string{"a", "b"}, days(3), data)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewPanel([]string{"a", "b"}, nil, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPanelWithDataAndTransform(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{1, 10, 2, 20, 4, 40})
	p, err := NewPanel([]string{"x", "y"}, days(3), data)
	require.NoError(t, err)

	out, err := p.WithData(mat.NewDense(3, 2, nil))
	require.NoError(t, err)
	assert.Equal(t, p.Names, out.Names)

	_, err = p.WithData(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrShape)

	rets, err := p.Transform((*Series).LogReturns)
	require.NoError(t, err)
	rows, cols := rets.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []string{"x", "y"}, rets.Names)
	assert.InDelta(t, math.Log(2), rets.Data.At(0, 0), 1e-12)
	assert.InDelta(t, math.Log(2), rets.Data.At(1, 1), 1e-12)
	assert.Equal(t, p.Timestamps[1], rets.Timestamps[0])
}
