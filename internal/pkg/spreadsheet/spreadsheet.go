package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format: only .xlsx, .xls and .csv are allowed")
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrEmptyWorksheet    = errors.New("worksheet is empty")
)

// maxXLSRows bounds how many rows are read from legacy .xls workbooks.
const maxXLSRows = 100000

// ReadRows reads the first worksheet of an uploaded file and returns one map per
// data row keyed by the header row. Blank rows are dropped.
func ReadRows(filename string, r io.Reader) ([]map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err := gocsv.CSVToMaps(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		return cleanMaps(rows), nil
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("failed to open xls workbook: %w", err)
		}
		if workbook.NumSheets() == 0 {
			return nil, ErrNoWorksheet
		}
		return toMaps(workbook.ReadAllCells(maxXLSRows))
	case ".xlsx", ".xlsm":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open xlsx workbook: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, ErrNoWorksheet
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
		}
		return toMaps(rows)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// toMaps uses the first non-blank row as the header.
func toMaps(rows [][]string) ([]map[string]string, error) {
	headerIdx := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrEmptyWorksheet
	}

	header := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		header[i] = normalizeHeader(h)
	}

	result := make([]map[string]string, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		m := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			m[key] = cellValue(row, i)
		}
		result = append(result, m)
	}
	return result, nil
}

func cleanMaps(rows []map[string]string) []map[string]string {
	result := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(row))
		blank := true
		for k, v := range row {
			v = strings.TrimSpace(v)
			if v != "" {
				blank = false
			}
			m[normalizeHeader(k)] = v
		}
		if !blank {
			result = append(result, m)
		}
	}
	return result
}

func normalizeHeader(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
