package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gatei-njuri/cocoa-analysis/internal/dataprocessing"
	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// Panel text sizes of the combined figure
var (
	figureTitleSize = vg.Points(16)
	panelTitleSize  = vg.Points(12)
	panelLabelSize  = vg.Points(10)
	figurePad       = vg.Points(8)
)

// noDataSuffix is appended to empty panel titles when annotating
const noDataSuffix = " (no data)"

// Cell is one panel of a combined figure
type Cell struct {
	Label  string
	Series *dataprocessing.TimeSeries
	Panel  Panel
}

// Layout is a rectangular grid of panels under one figure title.
//
// Panels are never skipped: a cell whose metric is absent or has no values is
// drawn as an empty panel, with its title suffixed " (no data)" when
// AnnotateEmpty is set.
type Layout struct {
	Title         string
	Rows          [][]Cell
	AnnotateEmpty bool
}

// Entry is one entity of an EntityGrid
type Entry struct {
	Label        string
	Series       *dataprocessing.TimeSeries
	ScatterColor color.Color
	BarColor     color.Color
}

// EntityGrid lays out one column per entity: the Yield scatter on the top
// row and the Area harvested bars below it.
func EntityGrid(title string, entries []Entry, markerSize float64) Layout {
	scatters := make([]Cell, 0, len(entries))
	bars := make([]Cell, 0, len(entries))

	for _, e := range entries {
		scatter := YieldScatter(e.Label, e.ScatterColor, markerSize)
		scatter.YLabel = "Yield (hg/ha)"
		scatters = append(scatters, Cell{Label: e.Label, Series: e.Series, Panel: panelStyle(scatter)})

		bar := AreaBar(e.Label, e.BarColor)
		bar.YLabel = "Area harvested (ha)"
		bars = append(bars, Cell{Label: e.Label, Series: e.Series, Panel: panelStyle(bar)})
	}

	return Layout{Title: title, Rows: [][]Cell{scatters, bars}}
}

func panelStyle(p Panel) Panel {
	p.TitleSize = panelTitleSize
	p.LabelSize = panelLabelSize
	p.BoldTitle = true
	return p
}

// Combined renders every cell of layout into one figure at dir/filename and
// returns the path written.
func (r *Renderer) Combined(layout Layout, dir, filename string) (string, error) {
	if len(layout.Rows) == 0 || len(layout.Rows[0]) == 0 {
		return "", apperrors.NewValidationError("combined layout has no panels")
	}
	cols := len(layout.Rows[0])
	for i, row := range layout.Rows {
		if len(row) != cols {
			return "", apperrors.NewValidationError(
				fmt.Sprintf("combined layout row %d has %d panels, row 0 has %d", i, len(row), cols))
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewDataAccessError("create output directory", err).WithContext("path", dir)
	}

	plots := make([][]*plot.Plot, len(layout.Rows))
	for i, row := range layout.Rows {
		plots[i] = make([]*plot.Plot, cols)
		for j, cell := range row {
			panel := cell.Panel
			var points []dataprocessing.Point
			if cell.Series != nil {
				points = cell.Series.Points(panel.Metric)
			}
			if len(points) == 0 {
				r.logger.Debug("Rendering empty panel",
					slog.String("entity", cell.Label),
					slog.String("metric", panel.Metric))
				if layout.AnnotateEmpty {
					panel.Title += noDataSuffix
				}
			}

			plt, err := panel.build(points)
			if err != nil {
				return "", apperrors.NewFormatError("build chart", err).
					WithContext("entity", cell.Label).
					WithContext("metric", panel.Metric)
			}
			plots[i][j] = plt
		}
	}

	path := filepath.Join(dir, filename)
	err := r.save(path, CombinedWidth, CombinedHeight, func(dc draw.Canvas) {
		dc.SetColor(color.White)
		dc.Fill(dc.Rectangle.Path())

		body := dc
		if layout.Title != "" {
			sty := plots[0][0].Title.TextStyle
			sty.Font.Size = figureTitleSize
			sty.Font.Weight = xfont.WeightBold
			sty.XAlign = text.XCenter
			sty.YAlign = text.YTop

			top := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - figurePad}
			dc.FillText(sty, top, layout.Title)
			body = draw.Crop(dc, 0, 0, 0, -(sty.Height(layout.Title) + 2*figurePad))
		}

		tiles := draw.Tiles{
			Rows:      len(plots),
			Cols:      cols,
			PadTop:    figurePad,
			PadBottom: figurePad,
			PadLeft:   figurePad,
			PadRight:  figurePad,
			PadX:      2 * figurePad,
			PadY:      2 * figurePad,
		}
		canvases := plot.Align(plots, tiles, body)
		for i := range plots {
			for j := range plots[i] {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	})
	if err != nil {
		return "", err
	}

	r.logger.Info("Saved combined chart",
		slog.String("path", path),
		slog.Int("rows", len(plots)),
		slog.Int("cols", cols))
	fmt.Fprintf(r.notices, "Saved combined plot: %s\n", path)
	return path, nil
}
