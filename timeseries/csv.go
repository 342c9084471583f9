package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

// CSVOptions holds options for loading a wide CSV panel: one optional date
// column followed by one numeric column per series.
type CSVOptions struct {
	DateColumn string   // Column name for dates (default: auto-detect "ds", "date", "Date", "timestamp")
	Columns    []string // Series columns to keep, in order (default: all non-date columns)
	DateFormat string   // Date format tried first (default: "2006-01-02")
	Delimiter  rune     // Field delimiter (default: ',')
	SkipRows   int      // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

var dateColumnNames = map[string]bool{
	"ds": true, "date": true, "Date": true, "timestamp": true, "time": true,
}

var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006",
}

// LoadPanelCSV loads a panel from a CSV file.
func LoadPanelCSV(filename string, opts *CSVOptions) (*Panel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p, err := LoadPanelFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

// LoadPanelFromReader loads a panel from an io.Reader. The header row is
// required. Empty, "NA", "NaN" and "null" cells load as NaN; any other
// unparsable cell is an error.
func LoadPanelFromReader(r io.Reader, opts *CSVOptions) (*Panel, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.Trim(header[i], "\""))
	}

	dateIdx := -1
	for i, h := range header {
		if (opts.DateColumn != "" && h == opts.DateColumn) || (opts.DateColumn == "" && dateColumnNames[h]) {
			dateIdx = i
			break
		}
	}
	if opts.DateColumn != "" && dateIdx == -1 {
		return nil, fmt.Errorf("%w: date column %q", ErrUnknownColumn, opts.DateColumn)
	}

	names, idx, err := selectColumns(header, dateIdx, opts.Columns)
	if err != nil {
		return nil, err
	}

	var values []float64
	var timestamps []time.Time
	datesOK := dateIdx >= 0
	rows := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows++

		for k, col := range idx {
			v, err := parseCell(record[col])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", rows, names[k], err)
			}
			values = append(values, v)
		}

		if datesOK {
			ts, ok := parseDate(strings.TrimSpace(strings.Trim(record[dateIdx], "\"")), opts.DateFormat)
			if ok {
				timestamps = append(timestamps, ts)
			} else {
				datesOK = false
				timestamps = nil
			}
		}
	}

	if rows == 0 {
		return nil, ErrNoData
	}

	return NewPanel(names, timestamps, mat.NewDense(rows, len(names), values))
}

func selectColumns(header []string, dateIdx int, want []string) ([]string, []int, error) {
	if len(want) == 0 {
		var names []string
		var idx []int
		for i, h := range header {
			if i == dateIdx {
				continue
			}
			names = append(names, h)
			idx = append(idx, i)
		}
		if len(names) == 0 {
			return nil, nil, fmt.Errorf("%w: no value columns", ErrNoData)
		}
		return names, idx, nil
	}

	idx := make([]int, len(want))
	for k, w := range want {
		idx[k] = -1
		for i, h := range header {
			if h == w && i != dateIdx {
				idx[k] = i
				break
			}
		}
		if idx[k] == -1 {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownColumn, w)
		}
	}
	return append([]string(nil), want...), idx, nil
}

func parseCell(raw string) (float64, error) {
	s := strings.TrimSpace(strings.Trim(raw, "\""))
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseDate(s, preferred string) (time.Time, bool) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// WritePanelCSV writes p in wide format. A "ds" column is written first when
// the panel has timestamps. precision is the number of decimals, -1 for the
// shortest exact representation.
func WritePanelCSV(w io.Writer, p *Panel, precision int) error {
	writer := csv.NewWriter(w)
	rows, cols := p.Dims()
	withDates := len(p.Timestamps) == rows

	record := make([]string, 0, cols+1)
	if withDates {
		record = append(record, "ds")
	}
	record = append(record, p.Names...)
	if err := writer.Write(record); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		record = record[:0]
		if withDates {
			record = append(record, formatDate(p.Timestamps[i]))
		}
		for j := 0; j < cols; j++ {
			record = append(record, strconv.FormatFloat(p.Data.At(i, j), 'f', precision, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatDate(ts time.Time) string {
	if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0 {
		return ts.Format("2006-01-02")
	}
	return ts.Format(time.RFC3339)
}

// SavePanelCSV saves p to a CSV file.
func SavePanelCSV(filename string, p *Panel, precision int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WritePanelCSV(file, p, precision); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
