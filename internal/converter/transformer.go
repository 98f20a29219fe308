// =============================================================================
// SC Allocation List - Transformation Engine
// =============================================================================
//
// This module is the anti-corruption layer between the source spreadsheet and
// the canonical AllocationRecord. It converts one loosely-typed row into one
// strongly-typed record using the declarative mapping table.
//
// ALGORITHM (per mapping, in list order):
//   1. Resolve the source column to an index via the header row.
//   2. Fetch the cell. A missing header or a short row yields an empty cell.
//   3. Apply the mapping's transformation, if any.
//   4. Assign the result to the target field. ACCOUNT_IDENTIFIER is always
//      wrapped in an AccountIdentifier, which rejects empty values.
//
// Fields that no mapping targets keep their zero value. The engine is a pure
// function: it never logs, never recovers from errors and never mutates its
// inputs. Deciding whether a failure is row-scoped is the caller's job.
//
// =============================================================================

package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// TransformRow builds an AllocationRecord from one source row.
//
// PARAMETERS:
//   - effectiveDate: The date stamped from the spreadsheet header.
//   - row: The raw cells of the data row.
//   - source: The parent spreadsheet, used for header lookups.
//   - mappings: The ordered mapping table.
//
// RETURNS:
//   - The assembled record.
//   - An error wrapping a domain sentinel (for example
//     domain.ErrEmptyAccountIdentifier) if a field cannot be assembled.
func TransformRow(effectiveDate time.Time, row []domain.Cell, source *domain.SourceSpreadsheet, mappings []domain.ColumnMapping) (domain.AllocationRecord, error) {
	record := domain.AllocationRecord{EffectiveDate: effectiveDate}

	for _, m := range mappings {
		value := lookup(row, source, m.Source.String())
		value = m.Transformation.Apply(value)

		if err := assign(&record, m.Target, value); err != nil {
			return domain.AllocationRecord{}, fmt.Errorf("column %q -> %s: %w", m.Source, m.Target, err)
		}
	}

	return record, nil
}

// lookup fetches the cell under the named header, or an empty cell.
func lookup(row []domain.Cell, source *domain.SourceSpreadsheet, column string) domain.Cell {
	idx, ok := source.ColumnIndex(column)
	if !ok || idx >= len(row) {
		return domain.EmptyCell()
	}
	return row[idx]
}

// assign writes a transformed value into the record field named by target.
func assign(record *domain.AllocationRecord, target domain.TargetColumn, value domain.Cell) error {
	switch target {
	case domain.ColEffectiveDate:
		if value.IsEmpty() {
			record.EffectiveDate = time.Time{}
			return nil
		}
		d, err := domain.ParseDate(value)
		if err != nil {
			return err
		}
		record.EffectiveDate = d

	case domain.ColAccountIdentifier:
		id, err := domain.NewAccountIdentifier(value.String())
		if err != nil {
			return err
		}
		record.AccountIdentifier = id

	case domain.ColFullName:
		record.FullName = value.String()

	case domain.ColBalance:
		balance, err := toBalance(value)
		if err != nil {
			return err
		}
		record.Balance = balance

	case domain.ColFraudWarning:
		record.FraudWarning = toBool(value)

	case domain.ColAdminHold:
		record.AdminHold = toBool(value)

	case domain.ColAllocationOfLossReason:
		record.AllocationOfLossReason = value.String()

	case domain.ColTimeFrame:
		record.TimeFrame = value.String()

	case domain.ColManagingOfficer:
		record.ManagingOfficer = value.String()

	default:
		// Unreachable for mappings built through domain.NewColumnMapping.
		return fmt.Errorf("%w: %q", domain.ErrInvalidTargetColumn, target)
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// toBalance converts a cell into a nullable decimal.
//
// Empty cells and blank strings are null. Numeric text is parsed exactly.
func toBalance(c domain.Cell) (decimal.NullDecimal, error) {
	switch c.Kind {
	case domain.KindEmpty:
		return decimal.NullDecimal{}, nil
	case domain.KindNumber:
		return decimal.NewNullDecimal(decimal.NewFromFloat(c.Num)), nil
	case domain.KindString:
		s := strings.TrimSpace(c.Str)
		if s == "" {
			return decimal.NullDecimal{}, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.NullDecimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidBalance, c.Str)
		}
		return decimal.NewNullDecimal(d), nil
	default:
		return decimal.NullDecimal{}, fmt.Errorf("%w: %s value %q", domain.ErrInvalidBalance, c.Kind, c.String())
	}
}

// toBool keeps booleans produced by a transformation and coerces anything else.
func toBool(c domain.Cell) bool {
	if c.Kind == domain.KindBool {
		return c.Bool
	}
	return c.Truthy()
}
