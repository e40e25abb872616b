package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// Tabular is anything with a header row and text records
type Tabular interface {
	Header() []string
	Records() [][]string
}

// CSVWriter writes tables as comma-delimited files under a base directory
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a writer rooted at dir
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM for spreadsheet tools
}

// WriteTable writes table to filename inside the writer's directory and
// returns the path written. The directory is created if needed and an
// existing file is replaced. No index column is written.
func (w *CSVWriter) WriteTable(table Tabular, filename string) (string, error) {
	path := filepath.Join(w.dir, filename)
	err := w.WriteCSV(path, WriteOptions{
		Headers: table.Header(),
		Records: table.Records(),
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewDataAccessError("create output directory", err).WithContext("path", path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperrors.NewDataAccessError("open output file", err).WithContext("path", path)
	}

	if err := writeRecords(file, options); err != nil {
		file.Close()
		return apperrors.NewDataAccessError("write output file", err).WithContext("path", path)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewDataAccessError("close output file", err).WithContext("path", path)
	}
	return nil
}

func writeRecords(file *os.File, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
