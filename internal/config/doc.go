// Package config provides configuration for the cocoa report.
//
// # Configuration Sources
//
// Ambient settings come from environment variables, namespaced COCOA_*:
//
//	COCOA_LOGGING_LEVEL=debug
//	COCOA_LOGGING_OUTPUT=both
//	COCOA_LOGGING_FILE_PATH=logs/cocoa-report.log
//	COCOA_TELEMETRY_ENABLED=true
//	COCOA_TELEMETRY_EXPORTER=stdout
//	COCOA_REPORT_FILE=report.yaml
//
// # Report Layout
//
// The entities in a run and the names and colors of their outputs are a
// Report. DefaultReport reproduces the built-in Ghana / Côte d'Ivoire report;
// a YAML file named by COCOA_REPORT_FILE overlays it:
//
//	entities:
//	  - name: Ghana
//	  - name: Togo
//	    scatter_color: "#9467bd"
//	combined:
//	  title: Cocoa in West Africa
//	  missing_panels: annotate
//	strictness:
//	  collisions: warn
//	  unknown_entity: fail
//
// Fields an entity leaves out are derived from its name and a fixed palette.
package config
