// =============================================================================
// SC Allocation List - Column Mapping Table
// =============================================================================
//
// The mapping table is the translation layer between the source spreadsheet
// and the canonical schema. It is plain data: an ordered list of
// (source column -> target column, optional transformation) entries.
//
// DEFAULT TABLE:
//
//   | Source header                 | Target field              | Transformation    |
//   |-------------------------------|---------------------------|-------------------|
//   | Account Identifier            | ACCOUNT_IDENTIFIER        |                   |
//   | Full Name                     | FULL_NAME                 |                   |
//   | Balance                       | BALANCE                   |                   |
//   | Fraud Warning - Desc          | FRAUD_WARNING             | yes_no_to_boolean |
//   | Admin Hold - Desc             | ADMIN_HOLD                | yes_no_to_boolean |
//   | Charge Off Reason Code - Desc | ALLOCATION_OF_LOSS_REASON |                   |
//   | Charge Off Group - Desc       | TIME_FRAME                |                   |
//   | Managing Officer - Desc       | MANAGING_OFFICER          |                   |
//
// EFFECTIVE_DATE is not mapped from a column; it is stamped from the
// spreadsheet's date cell.
//
// =============================================================================

package domain

import "fmt"

// =============================================================================
// TRANSFORMATIONS
// =============================================================================

// Transformation is a closed set of named value transformations.
type Transformation string

const (
	// TransformNone passes the value through unchanged.
	TransformNone Transformation = ""

	// TransformYesNoToBoolean converts "YES"/"NO" text into a boolean.
	TransformYesNoToBoolean Transformation = "yes_no_to_boolean"
)

// ParseTransformation returns the Transformation tagged s.
// An empty string (or "none") means no transformation.
func ParseTransformation(s string) (Transformation, error) {
	switch s {
	case "", "none":
		return TransformNone, nil
	case string(TransformYesNoToBoolean):
		return TransformYesNoToBoolean, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransformation, s)
	}
}

// Apply runs the transformation against a cell.
func (t Transformation) Apply(c Cell) Cell {
	switch t {
	case TransformYesNoToBoolean:
		if c.Kind == KindString {
			return BoolCell(ParseYesNo(c.Str).Bool())
		}
		return BoolCell(c.Truthy())
	default:
		return c
	}
}

// String returns the tag, or "None" when there is no transformation.
func (t Transformation) String() string {
	if t == TransformNone {
		return "None"
	}
	return string(t)
}

// =============================================================================
// COLUMN MAPPING
// =============================================================================

// ColumnMapping maps one source column onto one target column.
type ColumnMapping struct {
	Source         SourceColumnName
	Target         TargetColumn
	Transformation Transformation
}

// NewColumnMapping builds a mapping from raw strings, validating every part.
func NewColumnMapping(source, target, transformation string) (ColumnMapping, error) {
	src, err := NewSourceColumnName(source)
	if err != nil {
		return ColumnMapping{}, err
	}
	tgt, err := ParseTargetColumn(target)
	if err != nil {
		return ColumnMapping{}, err
	}
	tr, err := ParseTransformation(transformation)
	if err != nil {
		return ColumnMapping{}, err
	}
	return ColumnMapping{Source: src, Target: tgt, Transformation: tr}, nil
}

func mustMapping(source string, target TargetColumn, t Transformation) ColumnMapping {
	return ColumnMapping{Source: MustSourceColumnName(source), Target: target, Transformation: t}
}

// DefaultMappings returns the standard mapping configuration.
// A new slice is returned on every call.
func DefaultMappings() []ColumnMapping {
	return []ColumnMapping{
		mustMapping("Account Identifier", ColAccountIdentifier, TransformNone),
		mustMapping("Full Name", ColFullName, TransformNone),
		mustMapping("Balance", ColBalance, TransformNone),
		mustMapping("Fraud Warning - Desc", ColFraudWarning, TransformYesNoToBoolean),
		mustMapping("Admin Hold - Desc", ColAdminHold, TransformYesNoToBoolean),
		mustMapping("Charge Off Reason Code - Desc", ColAllocationOfLossReason, TransformNone),
		mustMapping("Charge Off Group - Desc", ColTimeFrame, TransformNone),
		mustMapping("Managing Officer - Desc", ColManagingOfficer, TransformNone),
	}
}

// UncoveredTargets lists canonical columns, other than EFFECTIVE_DATE, that no
// mapping writes to. Records built from such a list are incomplete.
func UncoveredTargets(mappings []ColumnMapping) []TargetColumn {
	covered := make(map[TargetColumn]bool, len(mappings))
	for _, m := range mappings {
		covered[m.Target] = true
	}
	var missing []TargetColumn
	for _, c := range canonicalColumns {
		if c == ColEffectiveDate {
			continue
		}
		if !covered[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
