package dashboard

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/models"
)

type stats struct {
	Properties          int     `json:"properties"`
	Residents           int     `json:"residents"`
	MonthIncome         float64 `json:"month_income"`
	MonthExpenses       float64 `json:"month_expenses"`
	PropertiesInArrears int     `json:"properties_in_arrears"`
}

// GetStatsAPI aggregates the landing-page counters for the current month.
func GetStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	now := time.Now()
	var s stats

	err := db.QueryRow(`SELECT COUNT(*) FROM properties WHERE deleted_at IS NULL`).Scan(&s.Properties)
	if err == nil {
		err = db.QueryRow(`SELECT COUNT(*) FROM residents WHERE deleted_at IS NULL`).Scan(&s.Residents)
	}
	if err == nil {
		err = db.QueryRow(`SELECT COALESCE(SUM(amount_paid), 0) FROM payments
						   WHERE status = 'paid' AND deleted_at IS NULL
						   AND EXTRACT(YEAR FROM payment_date) = $1
						   AND EXTRACT(MONTH FROM payment_date) = $2`,
			now.Year(), int(now.Month())).Scan(&s.MonthIncome)
	}
	if err == nil {
		err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM expenses
						   WHERE deleted_at IS NULL
						   AND EXTRACT(YEAR FROM date) = $1
						   AND EXTRACT(MONTH FROM date) = $2`,
			now.Year(), int(now.Month())).Scan(&s.MonthExpenses)
	}
	if err == nil {
		err = db.QueryRow(`SELECT COUNT(*) FROM properties
						   WHERE deleted_at IS NULL AND overdue_months > 0`).Scan(&s.PropertiesInArrears)
	}
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard stats")
	}

	return c.JSON(fiber.Map{"success": true, "data": s})
}

// GetRecentAnnouncementsAPI returns the latest notices for the dashboard feed.
func GetRecentAnnouncementsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, title, body, starts_at, author_id, created_at, updated_at
						   FROM announcements
						   WHERE deleted_at IS NULL AND starts_at <= NOW()
						   ORDER BY starts_at DESC
						   LIMIT 5`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch announcements")
	}
	defer rows.Close()

	list := []*models.Announcement{}
	for rows.Next() {
		a := &models.Announcement{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.StartsAt, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read announcements")
		}
		list = append(list, a)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}
