// Package dataprocessing turns a long-format agricultural table into cleaned
// per-entity time series.
//
// # Data Flow
//
//	source file → Load → Table (raw, text cells)
//	            → Reshaper.Reshape(entity) → Table (Year + metric columns, text)
//	            → Clean → TimeSeries (int years, float metrics, sorted)
//
// Every step returns a new value and never modifies its input.
//
// # Usage
//
//	raw, err := dataprocessing.Load("cocoa.csv")
//	if err != nil {
//	    return err
//	}
//	wide, err := dataprocessing.FilterEntity(raw, "Ghana")
//	if err != nil {
//	    return err
//	}
//	series := dataprocessing.Clean(wide)
//
// # Error Handling
//
// Load returns DATA_ACCESS errors for files that cannot be opened or read and
// FORMAT errors for input that is not tabular. Reshape returns FORMAT when a
// required column is absent, and VALIDATION only under PolicyFail. Clean never
// fails: malformed cells become missing values.
package dataprocessing
