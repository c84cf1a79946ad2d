package expenses

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/models"
)

func GetExpensesAPI(c *fiber.Ctx) error {
	expenses, err := GetAllExpenses(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load expenses")
	}
	return c.JSON(fiber.Map{"success": true, "data": expenses})
}

func CreateExpenseAPI(c *fiber.Ctx) error {
	var e models.Expense
	if err := c.BodyParser(&e); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if e.CategoryID == "" || e.Title == "" || e.Amount <= 0 || e.Date.IsZero() {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "category_id, title, a positive amount and date are required")
	}

	if err := CreateExpense(config.GetDB(), &e); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create expense")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": e})
}

func UpdateExpenseAPI(c *fiber.Ctx) error {
	var e models.Expense
	if err := c.BodyParser(&e); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	e.ID = c.Params("id")
	if e.CategoryID == "" || e.Title == "" || e.Amount <= 0 || e.Date.IsZero() {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "category_id, title, a positive amount and date are required")
	}

	affected, err := UpdateExpense(config.GetDB(), &e)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update expense")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": e})
}

func DeleteExpenseAPI(c *fiber.Ctx) error {
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

	affected, err := SoftDeleteExpense(config.GetDB(), c.Params("id"), strings.TrimSpace(req.Reason), actorID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete expense")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Expense deleted successfully"})
}

func GetCategoriesAPI(c *fiber.Ctx) error {
	categories, err := GetAllCategories(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load categories")
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

func CreateCategoryAPI(c *fiber.Ctx) error {
	var cat models.ExpenseCategory
	if err := c.BodyParser(&cat); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	cat.Name = strings.TrimSpace(cat.Name)
	if cat.Name == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name is required")
	}

	if err := CreateCategory(config.GetDB(), &cat); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cat})
}

func UpdateCategoryAPI(c *fiber.Ctx) error {
	var cat models.ExpenseCategory
	if err := c.BodyParser(&cat); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	cat.ID = c.Params("id")
	cat.Name = strings.TrimSpace(cat.Name)
	if cat.Name == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "name is required")
	}

	affected, err := UpdateCategory(config.GetDB(), &cat)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update category")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Category not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": cat})
}

// DeleteCategoryAPI refuses to delete a category that live expenses still
// reference.
func DeleteCategoryAPI(c *fiber.Ctx) error {
	categoryID := c.Params("id")

	referenced, err := CategoryReferenced(config.GetDB(), categoryID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check category references")
	}
	if referenced {
		return fiber.NewError(fiber.StatusConflict, "Category is still used by expenses")
	}

	affected, err := SoftDeleteCategory(config.GetDB(), categoryID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete category")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Category not found")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted successfully"})
}
