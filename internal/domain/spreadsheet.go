// =============================================================================
// SC Allocation List - Source Spreadsheet
// =============================================================================
//
// SourceSpreadsheet is the in-memory view of one uploaded file. The file has a
// fixed positional layout that is not self-describing:
//
//   | Row | Content                                              |
//   |-----|------------------------------------------------------|
//   | 0   | Title (column A)                                     |
//   | 1   | Effective date (column A), date cell or ISO-8601 text |
//   | 2   | Header row                                           |
//   | 3+  | Data rows, fully empty rows are dropped              |
//
// The parsers (xlsxparser, csvparser) turn a file into a grid of Cells and
// hand it to BuildSourceSpreadsheet, so both formats share the same rules.
//
// =============================================================================

package domain

import (
	"fmt"
	"strings"
	"time"
)

// Layout row positions (0-based).
const (
	TitleRowIndex     = 0
	DateRowIndex      = 1
	HeaderRowIndex    = 2
	DataStartRowIndex = 3
)

// DateLayout is the canonical date format used for display and export.
const DateLayout = "2006-01-02"

// Row is one data row together with its 1-based row number in the source file.
type Row struct {
	Number int
	Cells  []Cell
}

// SourceSpreadsheet is an immutable view of an uploaded spreadsheet.
type SourceSpreadsheet struct {
	title         string
	effectiveDate time.Time
	header        []string
	rows          []Row
	index         map[string]int
}

// NewSourceSpreadsheet assembles a SourceSpreadsheet from already-parsed parts.
// Duplicate header names resolve to their first position.
func NewSourceSpreadsheet(title string, effectiveDate time.Time, header []string, rows []Row) *SourceSpreadsheet {
	s := &SourceSpreadsheet{
		title:         title,
		effectiveDate: effectiveDate,
		header:        append([]string(nil), header...),
		rows:          append([]Row(nil), rows...),
		index:         make(map[string]int, len(header)),
	}
	for i, name := range s.header {
		if _, seen := s.index[name]; !seen {
			s.index[name] = i
		}
	}
	return s
}

// BuildSourceSpreadsheet interprets a raw cell grid using the fixed layout.
//
// RETURNS:
//   - ErrMissingLayout if the grid has fewer than three rows.
//   - ErrInvalidEffectiveDate if row 1 column 0 is not a date.
func BuildSourceSpreadsheet(grid [][]Cell) (*SourceSpreadsheet, error) {
	if len(grid) < DataStartRowIndex {
		return nil, fmt.Errorf("%w: need title, date and header rows, got %d row(s)", ErrMissingLayout, len(grid))
	}

	title := ""
	if c := cellAt(grid[TitleRowIndex], 0); c.Truthy() {
		title = c.String()
	}

	effectiveDate, err := ParseDate(cellAt(grid[DateRowIndex], 0))
	if err != nil {
		return nil, err
	}

	headerCells := grid[HeaderRowIndex]
	header := make([]string, len(headerCells))
	for i, c := range headerCells {
		if c.Truthy() {
			header[i] = c.String()
		}
	}

	var rows []Row
	for i := DataStartRowIndex; i < len(grid); i++ {
		if RowIsEmpty(grid[i]) {
			continue
		}
		rows = append(rows, Row{Number: i + 1, Cells: grid[i]})
	}

	return NewSourceSpreadsheet(title, effectiveDate, header, rows), nil
}

// Title returns the free-text title from row 0.
func (s *SourceSpreadsheet) Title() string { return s.title }

// EffectiveDate returns the as-of date stamped onto every record.
func (s *SourceSpreadsheet) EffectiveDate() time.Time { return s.effectiveDate }

// Header returns a copy of the header row.
func (s *SourceSpreadsheet) Header() []string {
	return append([]string(nil), s.header...)
}

// DataRows returns the non-empty data rows in file order.
func (s *SourceSpreadsheet) DataRows() []Row {
	return append([]Row(nil), s.rows...)
}

// RowCount returns the number of data rows.
func (s *SourceSpreadsheet) RowCount() int { return len(s.rows) }

// ColumnIndex returns the position of name in the header row.
// The second result is false when the name is absent.
func (s *SourceSpreadsheet) ColumnIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// =============================================================================
// DATE PARSING
// =============================================================================

// isoLayouts are the accepted textual date formats, tried in order.
var isoLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDate reads a calendar date from a date cell or an ISO-8601 string cell.
// The time of day is discarded.
func ParseDate(c Cell) (time.Time, error) {
	switch c.Kind {
	case KindDate:
		return truncateDate(c.Time), nil
	case KindString:
		s := strings.TrimSpace(c.Str)
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateDate(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidEffectiveDate, c.Str)
	default:
		return time.Time{}, fmt.Errorf("%w: %s value %q", ErrInvalidEffectiveDate, c.Kind, c.String())
	}
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cellAt(row []Cell, i int) Cell {
	if i < len(row) {
		return row[i]
	}
	return EmptyCell()
}
