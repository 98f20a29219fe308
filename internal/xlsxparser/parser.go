// =============================================================================
// SC Allocation List - XLSX Source Parser
// =============================================================================
//
// This module reads an uploaded XLSX workbook into a SourceSpreadsheet. Only
// the active sheet is read. Cells keep their native type so that the mapping
// engine can tell "YES" from TRUE and 500 from "500":
//
//   | Stored as                       | Cell kind    |
//   |---------------------------------|--------------|
//   | shared / inline / formula text  | KindString   |
//   | boolean                         | KindBool     |
//   | ISO date (t="d")                | KindDate     |
//   | number with a date format       | KindDate     |
//   | any other number                | KindNumber   |
//   | nothing                         | KindEmpty    |
//
// Legacy .xls files are not supported by excelize and are rejected upstream.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile opens the workbook at path and parses its active sheet.
func ParseFile(path string) (*domain.SourceSpreadsheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f)
}

// Parse reads a workbook from r and parses its active sheet.
func Parse(r io.Reader) (*domain.SourceSpreadsheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f)
}

// parseWorkbook reads the active sheet's cell grid and applies the layout.
func parseWorkbook(f *excelize.File) (*domain.SourceSpreadsheet, error) {
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	grid, err := ReadGrid(f, sheet)
	if err != nil {
		return nil, err
	}

	src, err := domain.BuildSourceSpreadsheet(grid)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return src, nil
}

// ReadGrid returns every row of sheet as typed cells.
func ReadGrid(f *excelize.File, sheet string) ([][]domain.Cell, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	reader := &cellReader{
		f:          f,
		sheet:      sheet,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		reader.date1904 = *props.Date1904
	}

	grid := make([][]domain.Cell, len(rows))
	for r, row := range rows {
		cells := make([]domain.Cell, len(row))
		for c, raw := range row {
			cell, err := reader.read(r, c, raw)
			if err != nil {
				return nil, err
			}
			cells[c] = cell
		}
		grid[r] = cells
	}

	return grid, nil
}

// =============================================================================
// CELL TYPING
// =============================================================================

// cellReader classifies raw cell values, caching date-style lookups.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

// read converts the raw value at (r, c), both 0-based, into a Cell.
func (cr *cellReader) read(r, c int, raw string) (domain.Cell, error) {
	if raw == "" {
		return domain.EmptyCell(), nil
	}

	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return domain.Cell{}, fmt.Errorf("invalid cell position (%d,%d): %w", r, c, err)
	}

	typ, err := cr.f.GetCellType(cr.sheet, axis)
	if err != nil {
		return domain.Cell{}, fmt.Errorf("failed to read cell %s: %w", axis, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return domain.StringCell(raw), nil

	case excelize.CellTypeBool:
		return domain.BoolCell(raw == "1" || strings.EqualFold(raw, "true")), nil

	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return domain.DateCell(t), nil
		}
		if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			return domain.DateCell(t), nil
		}
		return domain.StringCell(raw), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.StringCell(raw), nil
	}

	isDate, err := cr.hasDateFormat(axis)
	if err != nil {
		return domain.Cell{}, err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(n, cr.date1904)
		if err != nil {
			return domain.Cell{}, fmt.Errorf("cell %s: %w", axis, err)
		}
		return domain.DateCell(t), nil
	}

	return domain.NumberCell(n), nil
}

// hasDateFormat reports whether the cell's number format displays a date.
func (cr *cellReader) hasDateFormat(axis string) (bool, error) {
	idx, err := cr.f.GetCellStyle(cr.sheet, axis)
	if err != nil {
		return false, fmt.Errorf("failed to read style of %s: %w", axis, err)
	}
	if cached, ok := cr.dateStyles[idx]; ok {
		return cached, nil
	}

	isDate := false
	if idx != 0 {
		style, err := cr.f.GetStyle(idx)
		if err != nil {
			return false, fmt.Errorf("failed to read style %d: %w", idx, err)
		}
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}

	cr.dateStyles[idx] = isDate
	return isDate, nil
}

// isDateNumFmt recognises the built-in date formats and custom formats that
// contain a year or day token.
func isDateNumFmt(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		return customFormatHasDate(*custom)
	}
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// customFormatHasDate ignores quoted literals and [bracketed] sections.
func customFormatHasDate(format string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(format) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}
