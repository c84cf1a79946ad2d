package streets

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/models"
)

func GetStreetsAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := db.Query(`SELECT id, name, created_at, updated_at FROM streets WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch streets")
	}
	defer rows.Close()

	streets := []*models.Street{}
	for rows.Next() {
		s := &models.Street{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read streets")
		}
		streets = append(streets, s)
	}

	return c.JSON(fiber.Map{"success": true, "data": streets})
}

func CreateStreetAPI(c *fiber.Ctx, db *sql.DB) error {
	var s models.Street
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name is required")
	}

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM streets WHERE name = $1 AND deleted_at IS NULL)`, s.Name).Scan(&exists); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check street name")
	}
	if exists {
		return fiber.NewError(fiber.StatusConflict, "A street with this name already exists")
	}

	err := db.QueryRow(`INSERT INTO streets (name) VALUES ($1) RETURNING id, created_at, updated_at`, s.Name).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create street")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": s})
}

func UpdateStreetAPI(c *fiber.Ctx, db *sql.DB) error {
	var s models.Street
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name is required")
	}

	result, err := db.Exec(`UPDATE streets SET name = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		s.Name, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update street")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Street not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Street updated successfully"})
}

// DeleteStreetAPI soft-deletes a street unless a live property still points
// at it.
func DeleteStreetAPI(c *fiber.Ctx, db *sql.DB) error {
	streetID := c.Params("id")

	var referenced bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM properties WHERE street_id = $1 AND deleted_at IS NULL)`, streetID).
		Scan(&referenced)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check street references")
	}
	if referenced {
		return fiber.NewError(fiber.StatusConflict, "Street is still assigned to properties")
	}

	result, err := db.Exec(`UPDATE streets SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, streetID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete street")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Street not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Street deleted successfully"})
}
