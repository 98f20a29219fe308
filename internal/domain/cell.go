package domain

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// CELL VALUES
// =============================================================================

// CellKind identifies the type of a raw spreadsheet cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// String returns a readable name for the kind.
func (k CellKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a single loosely-typed value from a source row.
//
// Only the field matching Kind is meaningful. The zero Cell is empty.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell { return Cell{} }

// StringCell returns a string cell.
func StringCell(s string) Cell { return Cell{Kind: KindString, Str: s} }

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell { return Cell{Kind: KindNumber, Num: n} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// DateCell returns a date/datetime cell.
func DateCell(t time.Time) Cell { return Cell{Kind: KindDate, Time: t} }

// IsEmpty reports whether the cell is absent or holds only whitespace.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case KindEmpty:
		return true
	case KindString:
		return strings.TrimSpace(c.Str) == ""
	default:
		return false
	}
}

// Truthy applies generic boolean coercion: empty, "", 0 and false are false,
// everything else is true.
func (c Cell) Truthy() bool {
	switch c.Kind {
	case KindString:
		return c.Str != ""
	case KindNumber:
		return c.Num != 0
	case KindBool:
		return c.Bool
	case KindDate:
		return true
	default:
		return false
	}
}

// String coerces the cell to text. Empty cells become "".
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case KindDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 && c.Time.Nanosecond() == 0 {
			return c.Time.Format(DateLayout)
		}
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// RowIsEmpty reports whether every cell of a row is empty.
func RowIsEmpty(cells []Cell) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
