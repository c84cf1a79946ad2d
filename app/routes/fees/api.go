package fees

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/models"
)

func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	query := `SELECT id, name, COALESCE(description, ''), amount, is_active, created_at, updated_at
			  FROM fees WHERE deleted_at IS NULL`
	if c.Query("status") == "active" {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fees")
	}
	defer rows.Close()

	fees := []*models.Fee{}
	for rows.Next() {
		f := &models.Fee{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Amount, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read fees")
		}
		fees = append(fees, f)
	}

	return c.JSON(fiber.Map{"success": true, "data": fees})
}

func GetFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	f := &models.Fee{}
	err := db.QueryRow(`SELECT id, name, COALESCE(description, ''), amount, is_active, created_at, updated_at
						FROM fees WHERE id = $1 AND deleted_at IS NULL`, c.Params("id")).
		Scan(&f.ID, &f.Name, &f.Description, &f.Amount, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee")
	}
	return c.JSON(fiber.Map{"success": true, "data": f})
}

func nameTaken(db *sql.DB, name, excludeID string) (bool, error) {
	var taken bool
	err := db.QueryRow(`SELECT EXISTS (
							SELECT 1 FROM fees
							WHERE name = $1 AND is_active = true AND deleted_at IS NULL
							  AND ($2 = '' OR id <> $2::uuid)
						)`, name, excludeID).Scan(&taken)
	return taken, err
}

func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var f models.Fee
	if err := c.BodyParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" || f.Amount <= 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name and a positive amount are required")
	}

	taken, err := nameTaken(db, f.Name, "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check fee name")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "An active fee with this name already exists")
	}

	f.IsActive = true
	err = db.QueryRow(`INSERT INTO fees (name, description, amount, is_active)
					   VALUES ($1, NULLIF($2, ''), $3, true)
					   RETURNING id, created_at, updated_at`,
		f.Name, f.Description, f.Amount).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    f,
		"message": "Fee created successfully",
	})
}

// UpdateFeeAPI changes name, description, amount or active flag. Historical
// payments keep their amount snapshot; a price change only affects new
// registrations.
func UpdateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var f models.Fee
	if err := c.BodyParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	f.ID = c.Params("id")
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" || f.Amount <= 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name and a positive amount are required")
	}

	taken, err := nameTaken(db, f.Name, f.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check fee name")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "An active fee with this name already exists")
	}

	result, err := db.Exec(`UPDATE fees
							SET name = $1, description = NULLIF($2, ''), amount = $3, is_active = $4, updated_at = NOW()
							WHERE id = $5 AND deleted_at IS NULL`,
		f.Name, f.Description, f.Amount, f.IsActive, f.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Fee not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Fee updated successfully"})
}

func DeleteFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	type DeleteRequest struct {
		Reason string `json:"reason"`
	}
	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "A deletion reason is required")
	}

	actorID, _ := c.Locals("user_id").(string)

	result, err := db.Exec(`UPDATE fees
							SET deleted_at = NOW(), is_active = false, deletion_reason = $1, deleted_by = $2, updated_at = NOW()
							WHERE id = $3 AND deleted_at IS NULL`,
		strings.TrimSpace(req.Reason), actorID, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Fee not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Fee deleted successfully"})
}
