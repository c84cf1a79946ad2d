package reports

import "time"

// DebtorRow is one property's arrears position over the requested range.
type DebtorRow struct {
	PropertyID      string     `json:"property_id"`
	Community       string     `json:"community"`
	StreetName      string     `json:"street_name"`
	StreetNumber    string     `json:"street_number"`
	ResidentName    *string    `json:"resident_name,omitempty"`
	ExpectedMonths  int        `json:"expected_months"`
	PaidMonths      int        `json:"paid_months"`
	MonthsOverdue   int        `json:"months_overdue"`
	FeeAmount       *float64   `json:"fee_amount,omitempty"`
	TotalOwed       *float64   `json:"total_owed,omitempty"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

// IncomeRow is one month bucket of the income report.
type IncomeRow struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// MonthsInRange counts calendar months from (startMonth, startYear) through
// (endMonth, endYear) inclusive. Returns 0 when the range is inverted.
func MonthsInRange(startMonth, startYear, endMonth, endYear int) int {
	n := (endYear-startYear)*12 + (endMonth - startMonth) + 1
	if n < 0 {
		return 0
	}
	return n
}

// ComputeArrears fills the derived fields of a debtor row. feeAmount is nil
// when no fee filter was applied, in which case total_owed stays nil because
// a single representative amount would be arbitrary across fee types.
func ComputeArrears(row *DebtorRow, expected, paid int, feeAmount *float64) {
	row.ExpectedMonths = expected
	row.PaidMonths = paid
	row.MonthsOverdue = expected - paid
	if row.MonthsOverdue < 0 {
		row.MonthsOverdue = 0
	}
	if feeAmount != nil {
		owed := float64(row.MonthsOverdue) * *feeAmount
		row.FeeAmount = feeAmount
		row.TotalOwed = &owed
	}
}

// ZeroFillMonths expands sparse month sums into twelve ordered buckets.
func ZeroFillMonths(sums map[int]float64) []IncomeRow {
	out := make([]IncomeRow, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, IncomeRow{Month: m, Total: sums[m]})
	}
	return out
}
