package properties

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/models"
)

func GetPropertiesAPI(c *fiber.Ctx, db *sql.DB) error {
	properties, err := getAllProperties(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch properties")
	}
	return c.JSON(fiber.Map{"success": true, "data": properties})
}

func GetPropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	property, err := getPropertyByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch property")
	}
	return c.JSON(fiber.Map{"success": true, "data": property})
}

func CreatePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	var p models.Property
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if p.Community == "" || p.StreetID == "" || p.StreetNumber == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "community, street_id and street_number are required")
	}
	if p.Type == "" {
		p.Type = models.PropertyHouse
	}
	if p.Type != models.PropertyHouse && p.Type != models.PropertyLot {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "type must be house or lot")
	}

	taken, err := addressTaken(db, p.Community, p.StreetID, p.StreetNumber, "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check address uniqueness")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A property with this address already exists")
	}

	if err := createProperty(db, &p); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create property")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    p,
		"message": "Property created successfully",
	})
}

func UpdatePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	var p models.Property
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.ID = c.Params("id")

	if p.Community == "" || p.StreetID == "" || p.StreetNumber == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "community, street_id and street_number are required")
	}

	taken, err := addressTaken(db, p.Community, p.StreetID, p.StreetNumber, p.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check address uniqueness")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A property with this address already exists")
	}

	affected, err := updateProperty(db, &p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update property")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Property updated successfully"})
}

func DeletePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
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

	affected, err := softDeleteProperty(db, c.Params("id"), strings.TrimSpace(req.Reason), actorID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete property")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Property deleted successfully"})
}

// SetOverdueMonthsAPI adjusts the denormalized arrears counter shown in list
// views; reports never read it.
func SetOverdueMonthsAPI(c *fiber.Ctx, db *sql.DB) error {
	type OverdueRequest struct {
		OverdueMonths int `json:"overdue_months"`
	}
	var req OverdueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.OverdueMonths < 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "overdue_months cannot be negative")
	}

	affected, err := setOverdueMonths(db, c.Params("id"), req.OverdueMonths)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update overdue months")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Overdue months updated"})
}
