package charts

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/gatei-njuri/cocoa-analysis/internal/config"
	"github.com/gatei-njuri/cocoa-analysis/internal/dataprocessing"
	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// Figure sizes
const (
	SingleWidth    = 8 * vg.Inch
	SingleHeight   = 5 * vg.Inch
	CombinedWidth  = 14 * vg.Inch
	CombinedHeight = 10 * vg.Inch
)

// Default colors of the single-entity charts
var (
	defaultScatterColor = color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	defaultBarColor     = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
)

// Options holds the cosmetic parameters of a single-entity chart. Zero
// values select the defaults.
type Options struct {
	Color color.Color
	// MarkerSize is the scatter marker area in square points
	MarkerSize float64
}

func (o Options) color(def color.Color) color.Color {
	if o.Color == nil {
		return def
	}
	return o.Color
}

// Renderer draws time series charts to image files. Console notices
// (skips and saved paths) go to the notices writer; structured events go
// to the logger.
type Renderer struct {
	DPI     float64
	notices io.Writer
	logger  *slog.Logger
}

// NewRenderer creates a renderer at the default resolution
func NewRenderer(notices io.Writer, logger *slog.Logger) *Renderer {
	if notices == nil {
		notices = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		DPI:     config.DefaultDPI,
		notices: notices,
		logger:  logger,
	}
}

// Scatter renders Year against Yield. See Render for the skip rules.
func (r *Renderer) Scatter(ts *dataprocessing.TimeSeries, label, dir, filename string, opts Options) (bool, error) {
	size := opts.MarkerSize
	if size <= 0 {
		size = config.DefaultScatterMarkerSize
	}
	return r.Render(ts, label, dir, filename, YieldScatter(label, opts.color(defaultScatterColor), size))
}

// Bar renders Year against Area harvested. See Render for the skip rules.
func (r *Renderer) Bar(ts *dataprocessing.TimeSeries, label, dir, filename string, opts Options) (bool, error) {
	return r.Render(ts, label, dir, filename, AreaBar(label, opts.color(defaultBarColor)))
}

// Render draws panel for ts into dir/filename and reports whether a file
// was written. When the panel's metric is not a column of ts, or has no
// values, a notice is printed and no file is created; that is not an error.
// The directory is created before the check.
func (r *Renderer) Render(ts *dataprocessing.TimeSeries, label, dir, filename string, panel Panel) (bool, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, apperrors.NewDataAccessError("create output directory", err).WithContext("path", dir)
	}

	if !ts.HasMetric(panel.Metric) {
		r.skip(label, panel, fmt.Sprintf("'%s' column not found for %s", panel.Metric, label))
		return false, nil
	}
	points := ts.Points(panel.Metric)
	if len(points) == 0 {
		r.skip(label, panel, fmt.Sprintf("No valid %s values for %s", panel.Metric, label))
		return false, nil
	}

	plt, err := panel.build(points)
	if err != nil {
		return false, apperrors.NewFormatError("build chart", err).WithContext("metric", panel.Metric)
	}

	path := filepath.Join(dir, filename)
	if err := r.save(path, SingleWidth, SingleHeight, func(dc draw.Canvas) { plt.Draw(dc) }); err != nil {
		return false, err
	}

	r.logger.Info("Saved chart",
		slog.String("entity", label),
		slog.String("metric", panel.Metric),
		slog.String("kind", panel.Kind.noun()),
		slog.Int("points", len(points)),
		slog.String("path", path))
	fmt.Fprintf(r.notices, "Saved %s for %s: %s\n", panel.Kind.noun(), label, path)
	return true, nil
}

func (r *Renderer) skip(label string, panel Panel, reason string) {
	r.logger.Warn("Skipping chart",
		slog.String("entity", label),
		slog.String("metric", panel.Metric),
		slog.String("reason", reason))
	fmt.Fprintf(r.notices, "Warning: %s. Skipping %s.\n", reason, panel.Kind.noun())
}

// imageCanvas is a sized vector canvas that can encode itself
type imageCanvas interface {
	vg.CanvasSizer
	io.WriterTo
}

// newCanvas picks the backend from the file extension
func (r *Renderer) newCanvas(path string, w, h vg.Length) (imageCanvas, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(r.DPI)))}, nil
	case ".jpg", ".jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(r.DPI)))}, nil
	case ".pdf":
		return vgpdf.New(w, h), nil
	case ".svg":
		return vgsvg.New(w, h), nil
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unsupported image format %q", ext), nil).
			WithContext("path", path)
	}
}

// save draws onto a canvas sized w×h and writes it to path, replacing any
// existing file.
func (r *Renderer) save(path string, w, h vg.Length, paint func(draw.Canvas)) error {
	c, err := r.newCanvas(path, w, h)
	if err != nil {
		return err
	}
	paint(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewDataAccessError("create chart file", err).WithContext("path", path)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return apperrors.NewDataAccessError("write chart file", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewDataAccessError("close chart file", err).WithContext("path", path)
	}
	return nil
}
