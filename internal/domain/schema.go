package domain

import "fmt"

// =============================================================================
// TARGET SCHEMA
// =============================================================================

// TargetColumn is one of the canonical output field names.
type TargetColumn string

const (
	ColEffectiveDate          TargetColumn = "EFFECTIVE_DATE"
	ColAccountIdentifier      TargetColumn = "ACCOUNT_IDENTIFIER"
	ColFullName               TargetColumn = "FULL_NAME"
	ColBalance                TargetColumn = "BALANCE"
	ColFraudWarning           TargetColumn = "FRAUD_WARNING"
	ColAdminHold              TargetColumn = "ADMIN_HOLD"
	ColAllocationOfLossReason TargetColumn = "ALLOCATION_OF_LOSS_REASON"
	ColTimeFrame              TargetColumn = "TIME_FRAME"
	ColManagingOfficer        TargetColumn = "MANAGING_OFFICER"
)

// canonicalColumns is the output column order.
var canonicalColumns = []TargetColumn{
	ColEffectiveDate,
	ColAccountIdentifier,
	ColFullName,
	ColBalance,
	ColFraudWarning,
	ColAdminHold,
	ColAllocationOfLossReason,
	ColTimeFrame,
	ColManagingOfficer,
}

// ParseTargetColumn returns the TargetColumn named s, or ErrInvalidTargetColumn.
// Matching is exact.
func ParseTargetColumn(s string) (TargetColumn, error) {
	for _, c := range canonicalColumns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTargetColumn, s)
}

// DefaultTableName is the name of the target table.
const DefaultTableName = "SC_ALLOC_LIST"

// TableSchema describes the target table.
type TableSchema struct {
	TableName string
}

// DefaultTableSchema returns the schema for SC_ALLOC_LIST.
func DefaultTableSchema() TableSchema {
	return TableSchema{TableName: DefaultTableName}
}

// Columns returns the canonical column names in output order.
// The returned slice is a copy.
func (s TableSchema) Columns() []TargetColumn {
	out := make([]TargetColumn, len(canonicalColumns))
	copy(out, canonicalColumns)
	return out
}

// ColumnNames returns the canonical column names as strings.
func (s TableSchema) ColumnNames() []string {
	out := make([]string, len(canonicalColumns))
	for i, c := range canonicalColumns {
		out[i] = string(c)
	}
	return out
}
