// =============================================================================
// SC Allocation List - CSV Source Parser
// =============================================================================
//
// This module reads an SC allocation list that was saved as CSV. The layout is
// the same as the workbook form:
//   - Row 1: title
//   - Row 2: effective date (ISO text)
//   - Row 3: column headers
//   - Row 4+: data rows
//
// CSV carries no cell types, so every non-empty field becomes a string cell.
// The mapping engine already accepts text for balances, dates and flags.
//
// FEATURES:
//   - Ragged rows are accepted (rows may have fewer fields than the header)
//   - Lazy quotes for hand-edited files
//   - A leading UTF-8 byte order mark is dropped
//   - Blank lines keep their position, so an empty title line is allowed and
//     row numbers follow the file's line numbers
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// utf8BOM is written by spreadsheet tools when saving "CSV UTF-8".
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads a CSV file and returns the parsed spreadsheet.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - The parsed spreadsheet.
//   - An error if the file cannot be read or does not follow the layout.
func ParseFile(filePath string) (*domain.SourceSpreadsheet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads CSV data from r and returns the parsed spreadsheet.
//
// PARSING PROCESS:
//   1. Drop a leading byte order mark
//   2. Read record by record, placing each at its line in the file
//   3. Convert fields to cells
//   4. Apply the title / date / header / data layout
//
// encoding/csv skips blank lines, so each record is positioned by the line it
// started on. Blank lines become empty rows and the layout and "Row N"
// numbers match the file as a spreadsheet tool would show it.
func Parse(r io.Reader) (*domain.SourceSpreadsheet, error) {
	reader := bufio.NewReader(r)
	if head, err := reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := reader.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
	}

	csvReader := csv.NewReader(reader)
	configureReader(csvReader)

	var grid [][]domain.Cell
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)
		for len(grid) < line-1 {
			grid = append(grid, nil)
		}
		grid = append(grid, toCells(record))
	}

	if len(grid) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return domain.BuildSourceSpreadsheet(grid)
}

// configureReader sets the reader up for loosely formatted exports.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','

	// Title and date rows have one field; data rows have many.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
}

// toCells converts one record into typed cells. Empty fields become empty
// cells; everything else is kept verbatim as a string.
func toCells(record []string) []domain.Cell {
	cells := make([]domain.Cell, len(record))
	for i, value := range record {
		if value == "" {
			cells[i] = domain.EmptyCell()
			continue
		}
		cells[i] = domain.StringCell(value)
	}
	return cells
}
