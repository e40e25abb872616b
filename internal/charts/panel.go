package charts

import (
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gatei-njuri/cocoa-analysis/internal/dataprocessing"
)

// Kind selects how a panel draws its points
type Kind int

const (
	// Scatter draws one marker per year
	Scatter Kind = iota
	// Bar draws one bar per year from zero
	Bar
)

// noun names the chart kind in console notices
func (k Kind) noun() string {
	if k == Bar {
		return "bar chart"
	}
	return "scatter plot"
}

const (
	scatterAlpha = 0.8
	barAlpha     = 0.7
	gridAlpha    = 0.4
	// barWidth is the width of one bar in years
	barWidth = 0.8
)

// Panel describes one metric-over-time chart.
type Panel struct {
	Metric string
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Color  color.Color
	// MarkerSize is the scatter marker area in square points
	MarkerSize float64

	// Zero sizes keep the plot defaults
	TitleSize vg.Length
	LabelSize vg.Length
	BoldTitle bool
}

// Title renders the "<Entity> — <Metric> by Year" chart title
func Title(label, metric string) string {
	return fmt.Sprintf("%s — %s by Year", label, metric)
}

// YieldScatter is the default single-entity Yield chart
func YieldScatter(label string, c color.Color, markerSize float64) Panel {
	return Panel{
		Metric:     dataprocessing.MetricYield,
		Kind:       Scatter,
		Title:      Title(label, dataprocessing.MetricYield),
		XLabel:     dataprocessing.ColumnYear,
		YLabel:     dataprocessing.MetricYield,
		Color:      c,
		MarkerSize: markerSize,
	}
}

// AreaBar is the default single-entity Area harvested chart
func AreaBar(label string, c color.Color) Panel {
	return Panel{
		Metric: dataprocessing.MetricAreaHarvested,
		Kind:   Bar,
		Title:  Title(label, dataprocessing.MetricAreaHarvested),
		XLabel: dataprocessing.ColumnYear,
		YLabel: dataprocessing.MetricAreaHarvested,
		Color:  c,
	}
}

// build creates the plot for points. An empty points slice still yields a
// plot with axes, title and grid.
func (p Panel) build(points []dataprocessing.Point) (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = p.Title
	plt.X.Label.Text = p.XLabel
	plt.Y.Label.Text = p.YLabel

	if p.TitleSize > 0 {
		plt.Title.TextStyle.Font.Size = p.TitleSize
	}
	if p.BoldTitle {
		plt.Title.TextStyle.Font.Weight = xfont.WeightBold
	}
	if p.LabelSize > 0 {
		plt.X.Label.TextStyle.Font.Size = p.LabelSize
		plt.Y.Label.TextStyle.Font.Size = p.LabelSize
	}

	grid := plotter.NewGrid()
	gridColor := withAlpha(color.Gray{Y: 0xb0}, gridAlpha)
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	if p.Kind == Bar {
		grid.Vertical.Color = nil
	} else {
		grid.Vertical.Color = gridColor
		grid.Vertical.Dashes = grid.Horizontal.Dashes
	}
	plt.Add(grid)

	if len(points) == 0 {
		return plt, nil
	}

	switch p.Kind {
	case Bar:
		plt.Add(&yearBars{
			points: points,
			fill:   withAlpha(p.Color, barAlpha),
			line:   draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
		})
	default:
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i] = plotter.XY{X: float64(pt.Year), Y: pt.Value}
		}
		fill, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		radius := markerRadius(p.MarkerSize)
		fill.GlyphStyle.Shape = draw.CircleGlyph{}
		fill.GlyphStyle.Color = withAlpha(p.Color, scatterAlpha)
		fill.GlyphStyle.Radius = radius

		edge, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		edge.GlyphStyle.Shape = draw.RingGlyph{}
		edge.GlyphStyle.Color = withAlpha(color.Black, scatterAlpha)
		edge.GlyphStyle.Radius = radius

		plt.Add(fill, edge)
	}
	return plt, nil
}

// markerRadius converts a marker area in square points to a radius
func markerRadius(area float64) vg.Length {
	if area <= 0 {
		return vg.Points(3)
	}
	return vg.Points(math.Sqrt(area / math.Pi))
}

// yearBars draws a bar centered on each year, from zero to the value.
type yearBars struct {
	points []dataprocessing.Point
	fill   color.Color
	line   draw.LineStyle
}

// Plot implements plot.Plotter
func (b *yearBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, pt := range b.points {
		x := float64(pt.Year)
		x0, x1 := trX(x-barWidth/2), trX(x+barWidth/2)
		y0, y1 := trY(0), trY(pt.Value)

		poly := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(b.fill, c.ClipPolygonXY(poly))
		c.StrokeLines(b.line, c.ClipLinesXY(append(poly, poly[0]))...)
	}
}

// DataRange implements plot.DataRanger; the value axis always includes zero
func (b *yearBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, pt := range b.points {
		x := float64(pt.Year)
		xmin = math.Min(xmin, x-barWidth/2)
		xmax = math.Max(xmax, x+barWidth/2)
		ymin = math.Min(ymin, pt.Value)
		ymax = math.Max(ymax, pt.Value)
	}
	return xmin, xmax, ymin, ymax
}
