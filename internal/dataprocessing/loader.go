package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// utf8BOM is skipped at the start of delimited input
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the source table at path. Workbooks (.xlsx, .xlsm) are read
// from their first sheet; everything else is parsed as comma-delimited
// text. Cells are kept exactly as read.
func Load(path string) (*Table, error) {
	if err := checkSourceFile(path); err != nil {
		return nil, err
	}

	var (
		table *Table
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = loadWorkbook(path)
	default:
		table, err = loadDelimited(path)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded source table",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.columns)))
	return table, nil
}

// checkSourceFile rejects missing paths and directories
func checkSourceFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperrors.NewDataAccessError("stat source file", err).WithContext("path", path)
	}
	if info.IsDir() {
		return apperrors.NewDataAccessError(fmt.Sprintf("source %s is a directory, not a file", path), nil).
			WithContext("path", path)
	}
	return nil
}

func loadDelimited(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataAccessError("open source file", err).WithContext("path", path)
	}
	defer f.Close()

	table, err := ReadDelimited(f)
	if err != nil {
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	return table, nil
}

// ReadDelimited parses comma-delimited text with a header row.
func ReadDelimited(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	// Field counts are checked against the header below
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewFormatError("source has no header row", nil)
	}
	if err != nil {
		return nil, classifyReadError(err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classifyReadError(err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.NewFormatError(
				fmt.Sprintf("line %d has %d fields, header has %d", line, len(record), len(header)), nil).
				WithContext("line", line)
		}
		rows = append(rows, record)
	}

	return NewTable(header, rows), nil
}

// classifyReadError separates malformed input from I/O failures
func classifyReadError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return apperrors.NewFormatError("parse delimited source", err).WithContext("line", parseErr.Line)
	}
	return apperrors.NewDataAccessError("read source file", err)
}

func loadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFormatError("open source workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewFormatError("workbook has no sheets", nil).WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewFormatError("read workbook sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}

	// Blank rows come back as empty slices
	var body [][]string
	var header []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		if len(row) > len(header) {
			return nil, apperrors.NewFormatError(
				fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(row), len(header)), nil).
				WithContext("path", path)
		}
		body = append(body, row)
	}
	if header == nil {
		return nil, apperrors.NewFormatError("workbook sheet has no header row", nil).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}

	slog.Debug("Read workbook sheet", slog.String("sheet", sheets[0]), slog.Int("rows", len(body)))
	return NewTable(header, body), nil
}
