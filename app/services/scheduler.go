package services

import (
	"database/sql"
	"log/slog"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		slog.Info("scheduler started")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 2:05 AM, outside office hours
			if now.Hour() == 2 && now.Minute() == 5 {
				slog.Info("refreshing overdue cache")
				if err := RefreshOverdueCache(db); err != nil {
					slog.Error("overdue cache refresh failed", "error", err)
				}
			}
		}
	}()
}

// RefreshOverdueCache recomputes properties.overdue_months from the ledger.
// A property owes every month from its first active payment (or the start of
// the current year, whichever is earlier) through the current month that has
// no active row. The registration and cancellation paths keep the cache
// roughly current; this pass corrects drift from condoned rows and manual
// data fixes.
func RefreshOverdueCache(db *sql.DB) error {
	now := time.Now()
	currentIdx := now.Year()*12 + int(now.Month())
	yearStartIdx := now.Year()*12 + 1

	_, err := db.Exec(`
		UPDATE properties p
		SET overdue_months = sub.overdue, updated_at = NOW()
		FROM (
			SELECT p2.id,
				   GREATEST(
					   GREATEST($1 - LEAST(COALESCE(MIN(pay.year * 12 + pay.month), $2), $2) + 1, 0)
					   - COUNT(pay.id) FILTER (WHERE (pay.year * 12 + pay.month) <= $1),
				   0) AS overdue
			FROM properties p2
			LEFT JOIN payments pay
				ON pay.property_id = p2.id
				AND pay.status <> 'cancelled'
				AND pay.deleted_at IS NULL
			WHERE p2.deleted_at IS NULL
			GROUP BY p2.id
		) sub
		WHERE p.id = sub.id AND p.overdue_months <> sub.overdue`,
		currentIdx, yearStartIdx)
	return err
}
