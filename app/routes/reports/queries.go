package reports

import (
	"context"
	"database/sql"
	"time"
)

const reportQueryTimeout = 30 * time.Second

// DebtorFilter narrows the arrears report to a month range and, optionally,
// a single fee type by name.
type DebtorFilter struct {
	StartMonth int
	StartYear  int
	EndMonth   int
	EndYear    int
	FeeName    string
	MinOverdue int
}

// queryDebtors aggregates active ledger rows per property over the range.
// Condoned rows settle the month, so they count toward paid_months; only
// cancelled and soft-deleted rows are ignored.
func queryDebtors(ctx context.Context, db *sql.DB, f DebtorFilter) ([]*DebtorRow, error) {
	ctx, cancel := context.WithTimeout(ctx, reportQueryTimeout)
	defer cancel()

	startIdx := f.StartYear*12 + f.StartMonth
	endIdx := f.EndYear*12 + f.EndMonth
	expected := MonthsInRange(f.StartMonth, f.StartYear, f.EndMonth, f.EndYear)

	var feeAmount *float64
	if f.FeeName != "" {
		var amount float64
		err := db.QueryRowContext(ctx,
			`SELECT amount FROM fees WHERE name = $1 AND is_active = TRUE AND deleted_at IS NULL`,
			f.FeeName).Scan(&amount)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if err == nil {
			feeAmount = &amount
		}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT p.id, p.community, s.name, p.street_number,
			   CASE WHEN r.id IS NULL THEN NULL ELSE r.first_name || ' ' || r.last_name END,
			   COUNT(pay.id), MAX(pay.payment_date)
		FROM properties p
		JOIN streets s ON p.street_id = s.id
		LEFT JOIN residents r ON p.resident_id = r.id AND r.deleted_at IS NULL
		LEFT JOIN payments pay
			ON pay.property_id = p.id
			AND pay.status <> 'cancelled'
			AND pay.deleted_at IS NULL
			AND (pay.year * 12 + pay.month) BETWEEN $1 AND $2
			AND ($3 = '' OR pay.fee_id IN (
				SELECT id FROM fees WHERE name = $3 AND is_active = TRUE AND deleted_at IS NULL))
		WHERE p.deleted_at IS NULL
		GROUP BY p.id, p.community, s.name, p.street_number, r.id, r.first_name, r.last_name
		ORDER BY s.name, p.street_number`,
		startIdx, endIdx, f.FeeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	debtors := []*DebtorRow{}
	for rows.Next() {
		row := &DebtorRow{}
		var paid int
		err := rows.Scan(&row.PropertyID, &row.Community, &row.StreetName, &row.StreetNumber,
			&row.ResidentName, &paid, &row.LastPaymentDate)
		if err != nil {
			return nil, err
		}
		ComputeArrears(row, expected, paid, feeAmount)
		if row.MonthsOverdue >= f.MinOverdue {
			debtors = append(debtors, row)
		}
	}
	return debtors, rows.Err()
}

// queryIncome sums amount_paid of active paid rows by payment_date month.
// Condoned rows never brought in money, so they are excluded here.
func queryIncome(ctx context.Context, db *sql.DB, year int, feeName string) ([]IncomeRow, error) {
	ctx, cancel := context.WithTimeout(ctx, reportQueryTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT EXTRACT(MONTH FROM pay.payment_date)::int, SUM(pay.amount_paid)
		FROM payments pay
		WHERE pay.status = 'paid'
		AND pay.deleted_at IS NULL
		AND EXTRACT(YEAR FROM pay.payment_date) = $1
		AND ($2 = '' OR pay.fee_id IN (
			SELECT id FROM fees WHERE name = $2 AND is_active = TRUE AND deleted_at IS NULL))
		GROUP BY 1`,
		year, feeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := map[int]float64{}
	for rows.Next() {
		var month int
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, err
		}
		sums[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ZeroFillMonths(sums), nil
}
