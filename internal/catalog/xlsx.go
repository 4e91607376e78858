// =============================================================================
// Transfer Payload Converter - XLSX Catalog Import/Export
// =============================================================================
//
// Operators maintain the error catalog in a spreadsheet. This module reads a
// catalog from an XLSX sheet and writes a catalog back out.
//
// SHEET LAYOUT (default):
//
//   | Column A                  | Column B                      |
//   |---------------------------|-------------------------------|
//   | Code                      | Description                   |
//   | checkout_card/400         | token_used                    |
//   | wealth/failure            | wealth generic error          |
//
// Row order is catalog order. Empty rows are skipped.
//
// =============================================================================

package catalog

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetColumns defines which columns of the sheet hold which data.
// Column and row indices are 0-based (A=0, B=1, ...).
type SheetColumns struct {
	// Sheet is the sheet name. Empty means the first sheet.
	Sheet string

	// CodeColumn holds the descriptor code.
	// Default: 0 (Column A)
	CodeColumn int

	// DescriptionColumn holds the descriptor description.
	// Default: 1 (Column B)
	DescriptionColumn int

	// DataStartRow is the first row holding an entry.
	// Default: 1 (Row 2, after the header row)
	DataStartRow int
}

// DefaultSheetColumns returns the default sheet layout.
func DefaultSheetColumns() SheetColumns {
	return SheetColumns{
		CodeColumn:        0, // Column A
		DescriptionColumn: 1, // Column B
		DataStartRow:      1, // Row 2
	}
}

// LoadXLSX reads a catalog from a spreadsheet.
func LoadXLSX(path string, columns SheetColumns) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook: %w", err)
	}
	defer f.Close()

	sheetName := columns.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("catalog workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var entries []ErrorDescriptor
	for i := columns.DataStartRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		entry := ErrorDescriptor{
			Code:        cell(row, columns.CodeColumn),
			Description: cell(row, columns.DescriptionColumn),
		}
		if entry.Code == "" || entry.Description == "" {
			return nil, fmt.Errorf("row %d: code and description are required", i+1)
		}
		entries = append(entries, entry)
	}

	return fromFile(File{Errors: entries})
}

// WriteXLSX writes the catalog to a new workbook using the default layout.
func (c *Catalog) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if err := f.SetSheetRow(sheetName, "A1", &[]interface{}{"Code", "Description"}); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, entry := range c.Entries() {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cellName, &[]interface{}{entry.Code, entry.Description}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save catalog workbook: %w", err)
	}
	return nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
