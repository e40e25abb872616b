// Package shared holds code used across packages that belongs to no single
// pipeline stage.
//
// The testutil subpackage provides test helpers: source file fixtures, a
// recording slog handler and file comparison helpers. It is imported only
// from _test.go files.
package shared
