// Package exporter writes cleaned tables to disk as CSV.
//
// A CSVWriter is rooted at an output directory, which it creates on first
// write. Files are always replaced, never appended to.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter("output", logger)
//	path, err := writer.WriteTable(series, "ghana_table.csv")
package exporter
