// =============================================================================
// SC Allocation List - XLSX Export
// =============================================================================
//
// Writes the export table as a single-sheet workbook:
//   - Row 1 holds the column names in bold
//   - EFFECTIVE_DATE cells are real dates shown as YYYY-MM-DD
//   - BALANCE cells are numbers; null balances are left blank
//   - Flags are boolean cells
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used when no sheet name is configured.
const DefaultSheetName = "SC_Allocation_List"

// isoDateFormat is the custom number format applied to date cells.
var isoDateFormat = "yyyy-mm-dd"

// WriteXLSX writes the table as an XLSX workbook to w.
func WriteXLSX(w io.Writer, table *Table, sheetName string) error {
	f, err := BuildWorkbook(table, sheetName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook renders the table into a new in-memory workbook.
// The caller must Close the returned file.
func BuildWorkbook(table *Table, sheetName string) (*excelize.File, error) {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeSheet(f, sheetName, table); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// writeSheet fills sheet with the header and data rows and styles them.
func writeSheet(f *excelize.File, sheet string, table *Table) error {
	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &isoDateFormat})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}

		for j, v := range row {
			if _, ok := v.(time.Time); !ok {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, axis, axis, dateStyle); err != nil {
				return fmt.Errorf("failed to style %s: %w", axis, err)
			}
		}
	}

	if len(table.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}

		lastCol, err := excelize.ColumnNumberToName(len(table.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return nil
}

// cellValue converts a table value into something excelize stores natively.
func cellValue(v any) interface{} {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64()
	case nil:
		return nil
	default:
		return val
	}
}
