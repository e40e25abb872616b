package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// Policy selects how the reshape reacts to a tolerated irregularity
type Policy string

const (
	// PolicySilent ignores the irregularity
	PolicySilent Policy = "silent"
	// PolicyWarn logs it at WARN and carries on
	PolicyWarn Policy = "warn"
	// PolicyFail aborts the reshape with a VALIDATION error
	PolicyFail Policy = "fail"
)

// Reshaper turns long-format (Area, Year, Element, Value) rows into the
// wide time series of one entity.
//
// On a repeated (Year, Element) the first non-empty Value wins. An entity
// name that matches no row yields a table with only the Year column.
// Collisions and UnknownEntity choose whether either case is silent, logged,
// or an error.
type Reshaper struct {
	Collisions    Policy
	UnknownEntity Policy
	logger        *slog.Logger
}

// NewReshaper creates a reshaper with silent policies
func NewReshaper(logger *slog.Logger) *Reshaper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reshaper{
		Collisions:    PolicySilent,
		UnknownEntity: PolicySilent,
		logger:        logger,
	}
}

// FilterEntity reshapes raw for entity with silent policies.
func FilterEntity(raw *Table, entity string) (*Table, error) {
	return NewReshaper(nil).Reshape(context.Background(), raw, entity)
}

type yearGroup struct {
	year   string
	values map[string]string
}

// Reshape selects the rows whose Area equals entity exactly and pivots them
// to one row per Year with columns Year, Area harvested, Yield, Production.
// A metric column is present only if its Element occurs for the entity.
// Rows keep the order in which their Year first appears, keyed by numeric
// value so "1961" and "1961.0" share a row that keeps the first spelling.
// Years without any non-empty Value produce no row.
func (r *Reshaper) Reshape(ctx context.Context, raw *Table, entity string) (*Table, error) {
	for _, col := range []string{ColumnArea, ColumnYear, ColumnElement, ColumnValue} {
		if !raw.HasColumn(col) {
			return nil, apperrors.NewFormatError(fmt.Sprintf("source table has no %q column", col), nil).
				WithContext("columns", raw.Columns())
		}
	}
	areaIdx := raw.index[ColumnArea]
	yearIdx := raw.index[ColumnYear]
	elementIdx := raw.index[ColumnElement]
	valueIdx := raw.index[ColumnValue]

	var (
		groups     []*yearGroup
		byYear     = make(map[string]*yearGroup)
		elements   = make(map[string]bool)
		matched    int
		collisions int
	)

	for _, row := range raw.rows {
		if row[areaIdx] != entity {
			continue
		}
		matched++

		year, element, value := row[yearIdx], row[elementIdx], row[valueIdx]
		elements[element] = true

		key := yearKey(year)
		g, ok := byYear[key]
		if !ok {
			g = &yearGroup{year: year, values: make(map[string]string)}
			byYear[key] = g
			groups = append(groups, g)
		}

		// An empty cell is missing and does not claim the slot
		if value == "" {
			continue
		}
		if first, taken := g.values[element]; taken {
			collisions++
			if err := r.onCollision(ctx, entity, year, element, first, value); err != nil {
				return nil, err
			}
			continue
		}
		g.values[element] = value
	}

	if matched == 0 {
		if err := r.onUnknownEntity(ctx, entity); err != nil {
			return nil, err
		}
	}

	columns := []string{ColumnYear}
	for _, m := range Metrics {
		if elements[m] {
			columns = append(columns, m)
		}
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		// A year with no value for any element is dropped
		if len(g.values) == 0 {
			continue
		}
		row := make([]string, len(columns))
		row[0] = g.year
		for j, col := range columns[1:] {
			row[j+1] = g.values[col]
		}
		rows = append(rows, row)
	}

	r.logger.DebugContext(ctx, "Reshaped entity",
		slog.String("entity", entity),
		slog.Int("matched_rows", matched),
		slog.Int("years", len(rows)),
		slog.Int("collisions", collisions),
		slog.Any("columns", columns))

	return NewTable(columns, rows), nil
}

// yearKey groups numerically equal years ("1961", "1961.0", " 1961");
// unparsable text groups by itself
func yearKey(year string) string {
	f := parseNumber(year)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return year
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (r *Reshaper) onCollision(ctx context.Context, entity, year, element, kept, dropped string) error {
	switch r.Collisions {
	case PolicyFail:
		return apperrors.NewValidationError(
			fmt.Sprintf("entity %q has more than one %q value for year %q", entity, element, year)).
			WithContext("kept", kept).
			WithContext("dropped", dropped)
	case PolicyWarn:
		r.logger.WarnContext(ctx, "Duplicate value discarded",
			slog.String("entity", entity),
			slog.String("year", year),
			slog.String("element", element),
			slog.String("kept", kept),
			slog.String("dropped", dropped))
	}
	return nil
}

func (r *Reshaper) onUnknownEntity(ctx context.Context, entity string) error {
	switch r.UnknownEntity {
	case PolicyFail:
		return apperrors.NewValidationError(fmt.Sprintf("entity %q matched no rows", entity))
	case PolicyWarn:
		r.logger.WarnContext(ctx, "Entity matched no rows", slog.String("entity", entity))
	}
	return nil
}
