package config

// Application constants - hardcoded values of the cocoa report
const (
	AppName    = "cocoa-report"
	AppVersion = "1.0.0"

	// Output
	DefaultOutputDir = "output"
	DefaultLogFile   = "logs/cocoa-report.log"

	// Rendering
	DefaultDPI               = 300
	DefaultScatterMarkerSize = 40.0
	DefaultPanelMarkerSize   = 60.0

	DefaultCombinedFile  = "combined_plots.pdf"
	DefaultCombinedTitle = "Cocoa Production in Ghana and Côte d'Ivoire (1961–2022)"
)

// Reshape strictness levels
const (
	PolicySilent = "silent"
	PolicyWarn   = "warn"
	PolicyFail   = "fail"
)

// Combined chart handling of panels without data
const (
	MissingPanelsEmpty    = "empty"
	MissingPanelsAnnotate = "annotate"
)

// defaultPalette supplies colors for entities added through a report file
// without explicit colors: scatter, bar, panel scatter, panel bar.
var defaultPalette = [][4]string{
	{"#2ca02c", "#1f77b4", "#2e8b57", "#4169e1"},
	{"#ff7f0e", "#d62728", "#ff8c00", "#b22222"},
	{"#9467bd", "#8c564b", "#8a2be2", "#a0522d"},
	{"#e377c2", "#7f7f7f", "#c71585", "#696969"},
	{"#bcbd22", "#17becf", "#9acd32", "#20b2aa"},
}
