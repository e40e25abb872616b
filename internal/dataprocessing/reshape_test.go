package dataprocessing

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

var longColumns = []string{"Domain", "Area", "Element", "Year", "Unit", "Value"}

func longTable(rows ...[]string) *Table {
	return NewTable(longColumns, rows)
}

func row(area, element, year, value string) []string {
	return []string{"Crops", area, element, year, "", value}
}

func TestFilterEntity_Pivot(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1961", "3000"),
		row("Ghana", "Area harvested", "1961", "100"),
		row("Côte d'Ivoire", "Yield", "1961", "9999"),
		row("Ghana", "Production", "1962", "35"),
		row("Ghana", "Yield", "1962", "3100"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Area harvested", "Yield", "Production"}, wide.Columns())
	assert.Equal(t, [][]string{
		{"1961", "100", "3000", ""},
		{"1962", "", "3100", "35"},
	}, wide.Records())
}

func TestFilterEntity_ExactMatch(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1961", "1"),
		row("ghana", "Yield", "1962", "2"),
		row("Ghana ", "Yield", "1963", "3"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1961", "1"}}, wide.Records())
}

func TestFilterEntity_FirstWins(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1961", ""),
		row("Ghana", "Yield", "1961", "3000"),
		row("Ghana", "Yield", "1961", "4000"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	require.Equal(t, 1, wide.Len())

	v, _ := wide.Value(0, MetricYield)
	assert.Equal(t, "3000", v)
}

func TestFilterEntity_YearOrderOfFirstAppearance(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1970", "1"),
		row("Ghana", "Yield", "1961", "2"),
		row("Ghana", "Area harvested", "1970", "3"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1970", "3", "1"},
		{"1961", "", "2"},
	}, wide.Records())
}

func TestFilterEntity_DropsYearsWithoutValues(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1960", ""),
		row("Ghana", "Area harvested", "1960", ""),
		row("Ghana", "Yield", "1961", "3000"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	// Both elements occurred, so both columns stay
	assert.Equal(t, []string{"Year", "Area harvested", "Yield"}, wide.Columns())
	assert.Equal(t, [][]string{{"1961", "", "3000"}}, wide.Records())
}

func TestFilterEntity_GroupsNumericallyEqualYears(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1961", "3000"),
		row("Ghana", "Area harvested", "1961.0", "100"),
		row("Ghana", "Production", " 1961", "35"),
		row("Ghana", "Yield", "1961.5", "1"),
		row("Ghana", "Yield", "N/A", "2"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1961", "100", "3000", "35"},
		{"1961.5", "", "1", ""},
		{"N/A", "", "2", ""},
	}, wide.Records())
}

func TestFilterEntity_IgnoresOtherElements(t *testing.T) {
	raw := longTable(
		row("Ghana", "Producing Animals", "1961", "5"),
		row("Ghana", "Yield", "1961", "1"),
	)

	wide, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	assert.Equal(t, []string{"Year", "Yield"}, wide.Columns())
}

func TestFilterEntity_UnknownEntity(t *testing.T) {
	raw := longTable(row("Ghana", "Yield", "1961", "1"))

	wide, err := FilterEntity(raw, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, []string{"Year"}, wide.Columns())
	assert.Equal(t, 0, wide.Len())
}

func TestFilterEntity_MissingColumn(t *testing.T) {
	raw := NewTable([]string{"Area", "Year", "Value"}, [][]string{{"Ghana", "1961", "1"}})

	_, err := FilterEntity(raw, "Ghana")
	require.Error(t, err)
	assert.True(t, apperrors.IsFormat(err))
	assert.Contains(t, err.Error(), `"Element"`)
}

func TestReshaper_Policies(t *testing.T) {
	raw := longTable(
		row("Ghana", "Yield", "1961", "3000"),
		row("Ghana", "Yield", "1961", "4000"),
	)

	t.Run("collision fail", func(t *testing.T) {
		r := NewReshaper(nil)
		r.Collisions = PolicyFail

		_, err := r.Reshape(context.Background(), raw, "Ghana")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	})

	t.Run("collision warn", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReshaper(slog.New(slog.NewJSONHandler(&buf, nil)))
		r.Collisions = PolicyWarn

		wide, err := r.Reshape(context.Background(), raw, "Ghana")
		require.NoError(t, err)

		v, _ := wide.Value(0, MetricYield)
		assert.Equal(t, "3000", v)
		assert.Contains(t, buf.String(), "Duplicate value discarded")
		assert.Contains(t, buf.String(), `"dropped":"4000"`)
	})

	t.Run("unknown entity fail", func(t *testing.T) {
		r := NewReshaper(nil)
		r.UnknownEntity = PolicyFail

		_, err := r.Reshape(context.Background(), raw, "Atlantis")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	})

	t.Run("unknown entity warn", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReshaper(slog.New(slog.NewJSONHandler(&buf, nil)))
		r.UnknownEntity = PolicyWarn

		wide, err := r.Reshape(context.Background(), raw, "Atlantis")
		require.NoError(t, err)
		assert.Equal(t, 0, wide.Len())
		assert.Contains(t, buf.String(), "Entity matched no rows")
	})
}

func TestReshape_DoesNotModifyInput(t *testing.T) {
	raw := longTable(row("Ghana", "Yield", "1961", "1"))
	before := raw.Records()

	_, err := FilterEntity(raw, "Ghana")
	require.NoError(t, err)
	assert.Equal(t, before, raw.Records())
}
