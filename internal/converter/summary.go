package converter

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// Summary holds aggregate statistics over processed records.
type Summary struct {
	TotalRecords     int
	TotalBalance     decimal.Decimal
	FraudWarnings    int
	AdminHolds       int
	UniqueOfficers   int
	UniqueTimeFrames int
}

// Summarize computes statistics for a set of records. Null balances are
// left out of the total.
func Summarize(records []domain.AllocationRecord) Summary {
	s := Summary{
		TotalRecords: len(records),
		TotalBalance: decimal.Zero,
	}
	officers := make(map[string]struct{})
	timeFrames := make(map[string]struct{})

	for _, r := range records {
		if r.Balance.Valid {
			s.TotalBalance = s.TotalBalance.Add(r.Balance.Decimal)
		}
		if r.FraudWarning {
			s.FraudWarnings++
		}
		if r.AdminHold {
			s.AdminHolds++
		}
		if r.ManagingOfficer != "" {
			officers[r.ManagingOfficer] = struct{}{}
		}
		if r.TimeFrame != "" {
			timeFrames[r.TimeFrame] = struct{}{}
		}
	}

	s.UniqueOfficers = len(officers)
	s.UniqueTimeFrames = len(timeFrames)
	return s
}
