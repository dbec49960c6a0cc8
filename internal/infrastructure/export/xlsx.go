// Package export renders tabular data as downloadable spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hirepipe/ats/internal/core/ports"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultSheet    = "Sheet1"
)

var _ ports.SpreadsheetEncoder = XLSX{}

// XLSX encodes tables as Office Open XML workbooks.
type XLSX struct{}

func NewXLSX() XLSX { return XLSX{} }

func (XLSX) ContentType() string { return xlsxContentType }

func (XLSX) Extension() string { return "xlsx" }

// Encode writes the header on row 1 in bold followed by one row per record.
func (XLSX) Encode(t ports.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := t.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}

	if len(t.Header) > 0 {
		header := make([]any, len(t.Header))
		for i, h := range t.Header {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}

		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, fmt.Errorf("apply header style: %w", err)
		}
	}

	offset := 1
	if len(t.Header) == 0 {
		offset = 0
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1+offset)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
