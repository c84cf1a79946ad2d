package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Mendozape/crud-sub000/app/ledger"
	"github.com/Mendozape/crud-sub000/app/models"
)

// PaymentStore is the Postgres implementation of ledger.Store.
type PaymentStore struct {
	DB *sql.DB
}

const paymentColumns = `id, property_id, fee_id, month, year, payment_date, amount_paid, status,
	COALESCE(cancellation_reason, ''), cancelled_at, cancelled_by, created_at, updated_at, deleted_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.PropertyID, &p.FeeID, &p.Month, &p.Year, &p.PaymentDate,
		&p.AmountPaid, &p.Status, &p.CancellationReason, &p.CancelledAt,
		&p.CancelledBy, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func toInt64s(ms []int) []int64 {
	out := make([]int64, len(ms))
	for i, m := range ms {
		out[i] = int64(m)
	}
	return out
}

// RegisterMonths runs the whole batch in one transaction. The row lock on the
// existing period rows plus the partial unique index uq_payments_active_period
// make concurrent registrations of the same month collapse to a single active
// row: the loser's insert hits ON CONFLICT DO NOTHING and the month is simply
// not part of its response.
func (s *PaymentStore) RegisterMonths(ctx context.Context, p ledger.RegisterParams) ([]*models.Payment, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Snapshot the fee amount; this value is frozen on each created row.
	var amount float64
	err = tx.QueryRowContext(ctx,
		`SELECT amount FROM fees WHERE id = $1 AND is_active = true AND deleted_at IS NULL`,
		p.FeeID).Scan(&amount)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrFeeNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load fee: %v", err)
	}

	var propertyExists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1 AND deleted_at IS NULL)`,
		p.PropertyID).Scan(&propertyExists)
	if err != nil {
		return nil, fmt.Errorf("failed to check property: %v", err)
	}
	if !propertyExists {
		return nil, ledger.ErrPropertyNotFound
	}

	// Lock the active rows for the requested period so a concurrent batch for
	// the same (property, fee, year) serializes behind us.
	rows, err := tx.QueryContext(ctx,
		`SELECT month FROM payments
		 WHERE property_id = $1 AND fee_id = $2 AND year = $3 AND month = ANY($4)
		   AND status <> 'cancelled' AND deleted_at IS NULL
		 FOR UPDATE`,
		p.PropertyID, p.FeeID, p.Year, pq.Array(toInt64s(p.Months)))
	if err != nil {
		return nil, fmt.Errorf("failed to query existing months: %v", err)
	}
	var blocked []int
	for rows.Next() {
		var m int
		if err := rows.Scan(&m); err != nil {
			rows.Close()
			return nil, err
		}
		blocked = append(blocked, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	newMonths := ledger.DiffMonths(p.Months, blocked)

	status := p.Status
	if status == "" {
		status = models.PaymentPaid
	}

	var created []*models.Payment
	for _, month := range newMonths {
		row := tx.QueryRowContext(ctx,
			`INSERT INTO payments (id, property_id, fee_id, month, year, payment_date, amount_paid, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (property_id, fee_id, month, year)
			 WHERE status <> 'cancelled' AND deleted_at IS NULL
			 DO NOTHING
			 RETURNING `+paymentColumns,
			uuid.NewString(), p.PropertyID, p.FeeID, month, p.Year, p.PaymentDate, amount, status)

		pay, err := scanPayment(row)
		if err == sql.ErrNoRows {
			// lost a race for this month to a concurrent writer
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to insert payment: %v", err)
		}
		created = append(created, pay)
	}

	if len(created) > 0 {
		// Cache hint only; reports recompute arrears from the ledger.
		_, err = tx.ExecContext(ctx,
			`UPDATE properties SET overdue_months = GREATEST(overdue_months - $1, 0), updated_at = NOW()
			 WHERE id = $2`,
			len(created), p.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh overdue cache: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// CancelPayment performs the terminal paid→cancelled transition. The status
// guard in the UPDATE keeps the audit fields from ever being overwritten.
func (s *PaymentStore) CancelPayment(ctx context.Context, id, reason, actorID string) (*models.Payment, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`UPDATE payments
		 SET status = 'cancelled', cancellation_reason = $1, cancelled_at = NOW(), cancelled_by = NULLIF($2, '')::uuid, updated_at = NOW()
		 WHERE id = $3 AND status <> 'cancelled' AND deleted_at IS NULL
		 RETURNING `+paymentColumns,
		reason, actorID, id)

	pay, err := scanPayment(row)
	if err == sql.ErrNoRows {
		// distinguish missing from already-cancelled
		var status string
		lookupErr := tx.QueryRowContext(ctx,
			`SELECT status FROM payments WHERE id = $1 AND deleted_at IS NULL`, id).Scan(&status)
		if lookupErr == sql.ErrNoRows {
			return nil, ledger.ErrPaymentNotFound
		} else if lookupErr != nil {
			return nil, lookupErr
		}
		return nil, ledger.ErrAlreadyCancelled
	} else if err != nil {
		return nil, fmt.Errorf("failed to cancel payment: %v", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE properties SET overdue_months = overdue_months + 1, updated_at = NOW() WHERE id = $1`,
		pay.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh overdue cache: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pay, nil
}

func (s *PaymentStore) UpdatePayment(ctx context.Context, id string, upd ledger.UpdateParams) (*models.Payment, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
	current, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrPaymentNotFound
	} else if err != nil {
		return nil, err
	}
	if current.Status == models.PaymentCancelled {
		return nil, ledger.ErrAlreadyCancelled
	}

	// The edited row must not land on a period another active row settles.
	targetProperty := current.PropertyID
	if upd.PropertyID != nil {
		targetProperty = *upd.PropertyID
	}
	targetFee := current.FeeID
	if upd.FeeID != nil {
		targetFee = *upd.FeeID
	}
	var taken bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE property_id = $1 AND fee_id = $2 AND month = $3 AND year = $4
			  AND status <> 'cancelled' AND deleted_at IS NULL AND id <> $5
		)`,
		targetProperty, targetFee, current.Month, current.Year, id).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("failed to check target period: %v", err)
	}
	if taken {
		return nil, ledger.ErrPeriodSettled
	}

	row = tx.QueryRowContext(ctx,
		`UPDATE payments
		 SET property_id = COALESCE($1, property_id),
		     fee_id = COALESCE($2, fee_id),
		     payment_date = COALESCE($3, payment_date),
		     updated_at = NOW()
		 WHERE id = $4 AND status <> 'cancelled' AND deleted_at IS NULL
		 RETURNING `+paymentColumns,
		upd.PropertyID, upd.FeeID, upd.PaymentDate, id)

	pay, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrPaymentNotFound
	} else if err != nil {
		// concurrent writer may still beat the pre-check to the unique index
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ledger.ErrPeriodSettled
		}
		return nil, fmt.Errorf("failed to update payment: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pay, nil
}

func (s *PaymentStore) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND deleted_at IS NULL`, id)
	pay, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrPaymentNotFound
	} else if err != nil {
		return nil, err
	}
	return pay, nil
}

func (s *PaymentStore) PaidMonths(ctx context.Context, propertyID string, year int, feeID string) ([]int, error) {
	query := `SELECT DISTINCT month FROM payments
			  WHERE property_id = $1 AND year = $2
			    AND status <> 'cancelled' AND deleted_at IS NULL`
	args := []interface{}{propertyID, year}
	if feeID != "" {
		query += ` AND fee_id = $3`
		args = append(args, feeID)
	}
	query += ` ORDER BY month`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := []int{}
	for rows.Next() {
		var m int
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func (s *PaymentStore) ListPayments(ctx context.Context, f ledger.ListFilter) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE deleted_at IS NULL`
	var args []interface{}
	argIndex := 1

	if f.PropertyID != "" {
		query += fmt.Sprintf(" AND property_id = $%d", argIndex)
		args = append(args, f.PropertyID)
		argIndex++
	}
	if f.Year != 0 {
		query += fmt.Sprintf(" AND year = $%d", argIndex)
		args = append(args, f.Year)
		argIndex++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	query += " ORDER BY year DESC, month DESC, created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Payment{}
	for rows.Next() {
		pay, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, pay)
	}
	return list, rows.Err()
}
