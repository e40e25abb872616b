// Package charts renders cleaned time series as images with gonum/plot.
//
// Every chart is a Panel: one metric plotted against Year, drawn either as
// scatter markers or as bars. Scatter and Bar are the two single-entity
// presets; Combined draws a Layout grid of panels under a shared title.
//
// Single-entity charts degrade gracefully. When the metric column is absent
// or holds no values the renderer prints a warning notice, writes nothing
// and returns without error. Combined panels are never skipped; see Layout.
//
// The output format follows the file extension: .png and .jpg are rasterized
// at Renderer.DPI, .pdf and .svg are vector. Existing files are replaced.
package charts
