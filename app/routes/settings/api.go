package settings

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func GetSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch settings")
	}
	defer rows.Close()

	list := []setting{}
	for rows.Next() {
		var s setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read settings")
		}
		list = append(list, s)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

func UpsertSettingAPI(c *fiber.Ctx, db *sql.DB) error {
	var s setting
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	s.Key = strings.TrimSpace(s.Key)
	if s.Key == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "key is required")
	}

	_, err := db.Exec(`INSERT INTO settings (key, value) VALUES ($1, $2)
					   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		s.Key, s.Value)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save setting")
	}

	return c.JSON(fiber.Map{"success": true, "data": s})
}
