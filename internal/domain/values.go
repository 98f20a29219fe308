// =============================================================================
// SC Allocation List - Domain Value Objects
// =============================================================================
//
// This package holds the canonical allocation model: value objects, the source
// spreadsheet representation, the column mapping table and the target schema.
// It has no dependencies on parsing, export or the CLI so that the mapping and
// validation rules can be tested in isolation.
//
// VALUE OBJECTS:
//   - SourceColumnName  : non-empty header name from the source spreadsheet
//   - AccountIdentifier : non-empty account identifier
//   - YesNo             : the YES/NO indicator used by the "Desc" columns
//
// Value objects are validated at construction time. There is no way to obtain
// an invalid instance through the exported constructors.
//
// =============================================================================

package domain

import (
	"errors"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyColumnName is returned when a source column name is empty.
	ErrEmptyColumnName = errors.New("column name must be a non-empty string")

	// ErrEmptyAccountIdentifier is returned when an account identifier is empty.
	ErrEmptyAccountIdentifier = errors.New("account identifier must be a non-empty string")

	// ErrInvalidTargetColumn is returned when a mapping names a target outside the schema.
	ErrInvalidTargetColumn = errors.New("invalid target column")

	// ErrUnknownTransformation is returned for a transformation tag that is not defined.
	ErrUnknownTransformation = errors.New("unknown transformation")

	// ErrInvalidEffectiveDate is returned when a value cannot be read as a calendar date.
	ErrInvalidEffectiveDate = errors.New("cannot parse effective date")

	// ErrInvalidBalance is returned when a balance cell is not numeric.
	ErrInvalidBalance = errors.New("invalid balance")

	// ErrMissingLayout is returned when a spreadsheet lacks the title, date or header rows.
	ErrMissingLayout = errors.New("spreadsheet does not match the expected layout")
)

// =============================================================================
// SOURCE COLUMN NAME
// =============================================================================

// SourceColumnName is a column name from the source header row.
type SourceColumnName struct {
	value string
}

// NewSourceColumnName validates and wraps a column name.
func NewSourceColumnName(name string) (SourceColumnName, error) {
	if name == "" {
		return SourceColumnName{}, ErrEmptyColumnName
	}
	return SourceColumnName{value: name}, nil
}

// MustSourceColumnName is like NewSourceColumnName but panics on an empty name.
// It is intended for statically known configuration such as DefaultMappings.
func MustSourceColumnName(name string) SourceColumnName {
	c, err := NewSourceColumnName(name)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the column name.
func (c SourceColumnName) String() string { return c.value }

// =============================================================================
// ACCOUNT IDENTIFIER
// =============================================================================

// AccountIdentifier uniquely identifies an account.
type AccountIdentifier struct {
	value string
}

// NewAccountIdentifier validates and wraps an account identifier.
func NewAccountIdentifier(id string) (AccountIdentifier, error) {
	if id == "" {
		return AccountIdentifier{}, ErrEmptyAccountIdentifier
	}
	return AccountIdentifier{value: id}, nil
}

// String returns the identifier.
func (a AccountIdentifier) String() string { return a.value }

// =============================================================================
// YES / NO INDICATOR
// =============================================================================

// YesNo represents the YES/NO string values found in the source data.
type YesNo string

const (
	Yes YesNo = "YES"
	No  YesNo = "NO"
)

// ParseYesNo compares s case-insensitively against "YES".
// Anything other than a YES match is reported as No.
func ParseYesNo(s string) YesNo {
	if strings.ToUpper(s) == string(Yes) {
		return Yes
	}
	return No
}

// Bool converts the indicator to a boolean.
func (y YesNo) Bool() bool {
	return y == Yes
}
