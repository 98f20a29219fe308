package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationRecord is a single canonical allocation row.
//
// Records are built by the transformation engine from one source row and are
// not modified afterwards. Balance is nullable; Valid is false when the source
// cell was absent.
type AllocationRecord struct {
	EffectiveDate          time.Time
	AccountIdentifier      AccountIdentifier
	FullName               string
	Balance                decimal.NullDecimal
	FraudWarning           bool
	AdminHold              bool
	AllocationOfLossReason string
	TimeFrame              string
	ManagingOfficer        string
}

// Violation messages returned by Validate.
const (
	MsgFullNameEmpty    = "Full name cannot be empty"
	MsgBalanceMissing   = "Balance must be provided"
	MsgTimeFrameMissing = "Time frame must be specified"
)

// Validate checks the business rules and returns every violation found.
// An empty result means the record is valid.
func (r AllocationRecord) Validate() []string {
	var errs []string

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, MsgFullNameEmpty)
	}
	if !r.Balance.Valid {
		errs = append(errs, MsgBalanceMissing)
	}
	if strings.TrimSpace(r.TimeFrame) == "" {
		errs = append(errs, MsgTimeFrameMissing)
	}

	return errs
}
