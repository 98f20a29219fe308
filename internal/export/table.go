// =============================================================================
// SC Allocation List - Export Table
// =============================================================================
//
// This module flattens allocation records into a rectangular table in the
// canonical column order. Every export format is rendered from the same Table,
// so CSV, XLSX and XML exports always agree on columns and values.
//
// CELL VALUES:
//   | Column                    | Go type          | Absent value |
//   |---------------------------|------------------|--------------|
//   | EFFECTIVE_DATE            | time.Time        | nil          |
//   | BALANCE                   | decimal.Decimal  | nil          |
//   | FRAUD_WARNING, ADMIN_HOLD | bool             | -            |
//   | everything else           | string           | ""           |
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// Table is a rendered set of records ready for export.
type Table struct {
	// Name is the target table name (SC_ALLOC_LIST).
	Name string

	// Columns holds the header names in output order.
	Columns []string

	// Rows holds one slice of values per record, aligned with Columns.
	Rows [][]any
}

// NewTable renders records using the column order of schema.
func NewTable(schema domain.TableSchema, records []domain.AllocationRecord) *Table {
	columns := schema.Columns()

	table := &Table{
		Name:    schema.TableName,
		Columns: schema.ColumnNames(),
		Rows:    make([][]any, 0, len(records)),
	}

	for _, r := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = fieldValue(r, c)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// fieldValue returns the export value of one record field.
func fieldValue(r domain.AllocationRecord, c domain.TargetColumn) any {
	switch c {
	case domain.ColEffectiveDate:
		if r.EffectiveDate.IsZero() {
			return nil
		}
		return r.EffectiveDate
	case domain.ColAccountIdentifier:
		return r.AccountIdentifier.String()
	case domain.ColFullName:
		return r.FullName
	case domain.ColBalance:
		if !r.Balance.Valid {
			return nil
		}
		return r.Balance.Decimal
	case domain.ColFraudWarning:
		return r.FraudWarning
	case domain.ColAdminHold:
		return r.AdminHold
	case domain.ColAllocationOfLossReason:
		return r.AllocationOfLossReason
	case domain.ColTimeFrame:
		return r.TimeFrame
	case domain.ColManagingOfficer:
		return r.ManagingOfficer
	default:
		return nil
	}
}

// FormatValue renders a table value as text.
//
// Dates use YYYY-MM-DD, booleans "True"/"False", decimals their exact string
// form and nil an empty string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case time.Time:
		return val.Format(domain.DateLayout)
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// =============================================================================
// FORMAT DISPATCH
// =============================================================================

// Options controls format-specific output.
type Options struct {
	// SheetName is the worksheet name for XLSX output.
	SheetName string
}

// Extension returns the file extension, with dot, for an export format.
func Extension(format string) string {
	return "." + strings.ToLower(format)
}

// Write renders table to w in the named format ("csv", "xlsx" or "xml").
func Write(w io.Writer, format string, table *Table, opts Options) error {
	switch strings.ToLower(format) {
	case "csv":
		return WriteCSV(w, table)
	case "xlsx":
		return WriteXLSX(w, table, opts.SheetName)
	case "xml":
		return WriteXML(w, table, DefaultXMLOptions())
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
