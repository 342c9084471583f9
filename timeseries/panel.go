package timeseries

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoData is returned when a source holds no observations.
	ErrNoData = errors.New("timeseries: no data")
	// ErrShape is returned when labels or values disagree on dimensions.
	ErrShape = errors.New("timeseries: shape mismatch")
	// ErrUnknownColumn is returned for a column name not in the panel.
	ErrUnknownColumn = errors.New("timeseries: unknown column")
)

// Panel is a set of aligned series stored column-wise in a T x N matrix:
// rows are time steps, columns are assets or spreads.
type Panel struct {
	Names      []string
	Timestamps []time.Time // empty, or one per row
	Data       *mat.Dense
}

// NewPanel builds a panel. names must have one entry per column of data and
// timestamps, when given, one entry per row.
func NewPanel(names []string, timestamps []time.Time, data *mat.Dense) (*Panel, error) {
	if data == nil {
		return nil, ErrNoData
	}
	r, c := data.Dims()
	if len(names) != c {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrShape, len(names), c)
	}
	if len(timestamps) > 0 && len(timestamps) != r {
		return nil, fmt.Errorf("%w: %d timestamps for %d rows", ErrShape, len(timestamps), r)
	}
	return &Panel{Names: names, Timestamps: timestamps, Data: data}, nil
}

// PanelFromSeries stacks equally long series into a panel. Timestamps are
// taken from the first series when it has them.
func PanelFromSeries(series ...*Series) (*Panel, error) {
	if len(series) == 0 || series[0].Len() == 0 {
		return nil, ErrNoData
	}

	rows := series[0].Len()
	data := mat.NewDense(rows, len(series), nil)
	names := make([]string, len(series))
	for j, s := range series {
		if s.Len() != rows {
			return nil, fmt.Errorf("%w: series %q has %d values, want %d", ErrShape, s.Name, s.Len(), rows)
		}
		names[j] = s.Name
		data.SetCol(j, s.Values)
	}

	var timestamps []time.Time
	if series[0].HasTimestamps() {
		timestamps = copyTimestamps(series[0].Timestamps)
	}
	return NewPanel(names, timestamps, data)
}

// Dims returns the number of rows (time steps) and columns (series).
func (p *Panel) Dims() (rows, cols int) {
	return p.Data.Dims()
}

// Column returns a copy of column j as a Series.
func (p *Panel) Column(j int) *Series {
	rows, _ := p.Dims()
	values := mat.Col(nil, j, p.Data)

	var timestamps []time.Time
	if len(p.Timestamps) == rows {
		timestamps = copyTimestamps(p.Timestamps)
	}
	return &Series{Timestamps: timestamps, Values: values, Name: p.Names[j]}
}

// ColumnByName returns a copy of the named column.
func (p *Panel) ColumnByName(name string) (*Series, error) {
	for j, n := range p.Names {
		if n == name {
			return p.Column(j), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// WithData returns a panel with the same labels and new values of identical
// shape.
func (p *Panel) WithData(data *mat.Dense) (*Panel, error) {
	r, c := p.Dims()
	dr, dc := data.Dims()
	if r != dr || c != dc {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrShape, dr, dc, r, c)
	}
	return &Panel{Names: p.Names, Timestamps: p.Timestamps, Data: data}, nil
}

// Transform applies fn to every column and stacks the results. fn may
// shorten the series (e.g. LogReturns) as long as it does so uniformly.
func (p *Panel) Transform(fn func(*Series) *Series) (*Panel, error) {
	_, c := p.Dims()
	out := make([]*Series, c)
	for j := 0; j < c; j++ {
		out[j] = fn(p.Column(j))
		out[j].Name = p.Names[j]
	}
	return PanelFromSeries(out...)
}
