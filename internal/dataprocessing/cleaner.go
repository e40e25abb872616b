package dataprocessing

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxYear bounds the Year values that convert to int without overflow
const maxYear = 1 << 53

// Clean converts an entity table into a TimeSeries. Rows whose Year does
// not parse as a finite number are dropped; surviving years are truncated to
// integers. Metric cells that do not parse as a finite number become missing
// (NaN) without dropping the row. Rows are sorted by Year, keeping input order on ties.
// A table without a Year column yields an empty series.
func Clean(table *Table) *TimeSeries {
	var metrics []string
	var metricIdx []int
	for _, m := range Metrics {
		if j, ok := table.index[m]; ok {
			metrics = append(metrics, m)
			metricIdx = append(metricIdx, j)
		}
	}

	ts := &TimeSeries{Metrics: metrics, Rows: []Observation{}}

	yearIdx, ok := table.index[ColumnYear]
	if !ok {
		return ts
	}

	for _, row := range table.rows {
		year, ok := parseYear(row[yearIdx])
		if !ok {
			continue
		}
		values := make([]float64, len(metricIdx))
		for k, j := range metricIdx {
			values[k] = parseMetric(row[j])
		}
		ts.Rows = append(ts.Rows, Observation{Year: year, Values: values})
	}

	sort.SliceStable(ts.Rows, func(i, j int) bool {
		return ts.Rows[i].Year < ts.Rows[j].Year
	})
	return ts
}

// parseYear parses a Year cell, truncating fractional values
func parseYear(s string) (int, bool) {
	f := parseNumber(s)
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= maxYear {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// parseMetric parses a metric cell; non-finite values are missing
func parseMetric(s string) float64 {
	f := parseNumber(s)
	if math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// parseNumber parses a numeric cell; anything unparsable is NaN
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
