package residents

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/models"
)

func GetResidentsAPI(c *fiber.Ctx, db *sql.DB) error {
	search := strings.TrimSpace(c.Query("search"))

	query := `SELECT id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''),
			  COALESCE(comments, ''), created_at, updated_at
			  FROM residents WHERE deleted_at IS NULL`
	var args []interface{}
	if search != "" {
		query += ` AND (LOWER(first_name) LIKE $1 OR LOWER(last_name) LIKE $1 OR LOWER(first_name || ' ' || last_name) LIKE $1)`
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += ` ORDER BY first_name, last_name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch residents")
	}
	defer rows.Close()

	residents := []*models.Resident{}
	for rows.Next() {
		r := &models.Resident{}
		err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.Comments, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read residents")
		}
		residents = append(residents, r)
	}

	return c.JSON(fiber.Map{"success": true, "data": residents})
}

func GetResidentAPI(c *fiber.Ctx, db *sql.DB) error {
	r := &models.Resident{}
	err := db.QueryRow(`SELECT id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''),
						COALESCE(comments, ''), created_at, updated_at
						FROM residents WHERE id = $1 AND deleted_at IS NULL`, c.Params("id")).
		Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.Comments, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Resident not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch resident")
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

func CreateResidentAPI(c *fiber.Ctx, db *sql.DB) error {
	var r models.Resident
	if err := c.BodyParser(&r); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if r.FirstName == "" || r.LastName == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "first_name and last_name are required")
	}

	err := db.QueryRow(`INSERT INTO residents (first_name, last_name, email, phone, comments)
						VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
						RETURNING id, created_at, updated_at`,
		r.FirstName, r.LastName, r.Email, r.Phone, r.Comments).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create resident")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

func UpdateResidentAPI(c *fiber.Ctx, db *sql.DB) error {
	var r models.Resident
	if err := c.BodyParser(&r); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if r.FirstName == "" || r.LastName == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "first_name and last_name are required")
	}

	result, err := db.Exec(`UPDATE residents
							SET first_name = $1, last_name = $2, email = NULLIF($3, ''),
							    phone = NULLIF($4, ''), comments = NULLIF($5, ''), updated_at = NOW()
							WHERE id = $6 AND deleted_at IS NULL`,
		r.FirstName, r.LastName, r.Email, r.Phone, r.Comments, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update resident")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Resident not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Resident updated successfully"})
}

// DeleteResidentAPI soft-deletes a resident; properties keep existing with a
// nulled resident reference (ON DELETE SET NULL on live rows is handled here
// explicitly since this is a soft delete).
func DeleteResidentAPI(c *fiber.Ctx, db *sql.DB) error {
	residentID := c.Params("id")

	tx, err := db.Begin()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete resident")
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE residents SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, residentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete resident")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Resident not found")
	}

	if _, err := tx.Exec(`UPDATE properties SET resident_id = NULL, updated_at = NOW() WHERE resident_id = $1`, residentID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to unlink resident from properties")
	}

	if err := tx.Commit(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete resident")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Resident deleted successfully"})
}
