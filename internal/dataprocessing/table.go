package dataprocessing

import (
	"math"
	"strconv"
)

// Source columns every raw table must carry
const (
	ColumnArea    = "Area"
	ColumnYear    = "Year"
	ColumnElement = "Element"
	ColumnValue   = "Value"
)

// Metric columns produced by the reshape, in output order
const (
	MetricAreaHarvested = "Area harvested"
	MetricYield         = "Yield"
	MetricProduction    = "Production"
)

// Metrics lists the metric columns kept by the reshape, in column order.
var Metrics = []string{MetricAreaHarvested, MetricYield, MetricProduction}

// Table is an in-memory relational table of text cells. Rows always have
// exactly one cell per column. Accessors return copies; a Table is never
// modified after construction.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header and rows. Short rows are padded
// with empty cells and long rows are truncated to the header width.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, len(rows)),
	}
	for i, name := range t.columns {
		// On duplicate header names the first column wins
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	for i, row := range rows {
		cells := make([]string, len(t.columns))
		copy(cells, row)
		t.rows[i] = cells
	}
	return t
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table has a column with the given name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of row i
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Value returns the cell at row i of the named column
func (t *Table) Value(i int, column string) (string, bool) {
	j, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return "", false
	}
	return t.rows[i][j], true
}

// Header returns the column names; it lets a Table be written by the exporter
func (t *Table) Header() []string {
	return t.Columns()
}

// Records returns a copy of all rows
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Observation is one cleaned row: a year and one value per metric column.
// A NaN value marks a missing cell.
type Observation struct {
	Year   int
	Values []float64
}

// Point is a single non-missing (Year, value) pair of one metric
type Point struct {
	Year  int
	Value float64
}

// TimeSeries is the cleaned, year-sorted wide table of a single entity.
// Metrics holds only the metric columns present in the source.
type TimeSeries struct {
	Metrics []string
	Rows    []Observation
}

// Len returns the number of rows
func (ts *TimeSeries) Len() int {
	return len(ts.Rows)
}

// HasMetric reports whether the metric is a column of the series
func (ts *TimeSeries) HasMetric(metric string) bool {
	return ts.metricIndex(metric) >= 0
}

// Points returns the rows where metric is finite, in row order.
// It returns nil when the metric is not a column.
func (ts *TimeSeries) Points(metric string) []Point {
	j := ts.metricIndex(metric)
	if j < 0 {
		return nil
	}
	points := make([]Point, 0, len(ts.Rows))
	for _, row := range ts.Rows {
		if v := row.Values[j]; math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		points = append(points, Point{Year: row.Year, Value: row.Values[j]})
	}
	return points
}

// Header returns Year followed by the metric columns
func (ts *TimeSeries) Header() []string {
	return append([]string{ColumnYear}, ts.Metrics...)
}

// Records renders every row as text; missing cells are empty
func (ts *TimeSeries) Records() [][]string {
	out := make([][]string, len(ts.Rows))
	for i, row := range ts.Rows {
		rec := make([]string, 0, 1+len(row.Values))
		rec = append(rec, strconv.Itoa(row.Year))
		for _, v := range row.Values {
			rec = append(rec, FormatValue(v))
		}
		out[i] = rec
	}
	return out
}

// FormatValue renders a metric value with the shortest exact representation
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (ts *TimeSeries) metricIndex(metric string) int {
	for i, m := range ts.Metrics {
		if m == metric {
			return i
		}
	}
	return -1
}
