package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the on-disk encoding of a roster file.
type Format int

const (
	// FormatCSV is UTF-8 comma-separated text, BOM tolerated on read
	// and emitted on write.
	FormatCSV Format = iota
	// FormatXLSX is a spreadsheet workbook; only the first sheet is
	// read.
	FormatXLSX
)

func (f Format) String() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "csv"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatXLSX {
		return ".xlsx"
	}
	return ".csv"
}

// DetectFormat picks the format from the file extension. Anything that
// is not a spreadsheet extension is treated as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

const bom = "\uFEFF"

// ReadFile loads a roster file into raw cell rows, header included.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if DetectFormat(path) == FormatXLSX {
		return readXLSX(f)
	}
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	text := strings.TrimPrefix(string(data), bom)

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1 // rows may be ragged; the parser pads
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// WriteFile writes cell rows in the format implied by the path.
func WriteFile(path string, rows [][]string) error {
	if DetectFormat(path) == FormatXLSX {
		return writeXLSX(path, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return writeCSV(f, rows)
}

// writeCSV emits a BOM so spreadsheet applications decode UTF-8, and
// wraps every field in double quotes the way the desk's downstream
// tooling expects. encoding/csv only quotes when forced to, so the
// quoting is done by hand.
func writeCSV(w io.Writer, rows [][]string) error {
	var b strings.Builder
	b.WriteString(bom)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

const sheetName = "参加者一覧"

func writeXLSX(path string, rows [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := wb.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
