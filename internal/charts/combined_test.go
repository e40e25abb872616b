package charts

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatei-njuri/cocoa-analysis/internal/dataprocessing"
	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

func entries() []Entry {
	return []Entry{
		{Label: "Ghana", Series: series(), ScatterColor: color.Black, BarColor: color.Black},
		{Label: "Côte d'Ivoire", Series: &dataprocessing.TimeSeries{}, ScatterColor: color.Black, BarColor: color.Black},
	}
}

func TestEntityGrid(t *testing.T) {
	layout := EntityGrid("Title", entries(), 60)

	require.Len(t, layout.Rows, 2)
	require.Len(t, layout.Rows[0], 2)

	top, bottom := layout.Rows[0], layout.Rows[1]
	assert.Equal(t, Scatter, top[0].Panel.Kind)
	assert.Equal(t, dataprocessing.MetricYield, top[1].Panel.Metric)
	assert.Equal(t, "Côte d'Ivoire — Yield by Year", top[1].Panel.Title)
	assert.Equal(t, "Yield (hg/ha)", top[0].Panel.YLabel)
	assert.Equal(t, 60.0, top[0].Panel.MarkerSize)

	assert.Equal(t, Bar, bottom[0].Panel.Kind)
	assert.Equal(t, "Ghana — Area harvested by Year", bottom[0].Panel.Title)
	assert.Equal(t, "Area harvested (ha)", bottom[1].Panel.YLabel)
	assert.True(t, bottom[1].Panel.BoldTitle)
}

func TestRenderer_CombinedPDF(t *testing.T) {
	r, notices := newTestRenderer()
	dir := filepath.Join(t.TempDir(), "out")

	// The second entity has no data; its panels are drawn empty
	path, err := r.Combined(EntityGrid("Cocoa", entries(), 60), dir, "combined_plots.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "combined_plots.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Equal(t, "Saved combined plot: "+path+"\n", notices.String())
}

func TestRenderer_CombinedPNGWithoutTitle(t *testing.T) {
	r, _ := newTestRenderer()
	layout := EntityGrid("", entries()[:1], 60)
	layout.AnnotateEmpty = true

	path, err := r.Combined(layout, t.TempDir(), "grid.png")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderer_CombinedNonFiniteValues(t *testing.T) {
	infinite := &dataprocessing.TimeSeries{
		Metrics: []string{dataprocessing.MetricAreaHarvested, dataprocessing.MetricYield},
		Rows: []dataprocessing.Observation{
			{Year: 1961, Values: []float64{math.Inf(1), math.Inf(1)}},
			{Year: 1962, Values: []float64{100, 300}},
		},
	}
	r, _ := newTestRenderer()
	layout := EntityGrid("Cocoa", []Entry{{Label: "Ghana", Series: infinite, ScatterColor: color.Black, BarColor: color.Black}}, 60)

	path, err := r.Combined(layout, t.TempDir(), "combined.png")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderer_CombinedInvalidLayout(t *testing.T) {
	r, _ := newTestRenderer()
	dir := t.TempDir()

	_, err := r.Combined(Layout{}, dir, "c.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	ragged := EntityGrid("t", entries(), 60)
	ragged.Rows[1] = ragged.Rows[1][:1]
	_, err = r.Combined(ragged, dir, "c.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
