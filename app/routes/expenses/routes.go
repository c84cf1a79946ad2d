package expenses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupExpenseRoutes(app *fiber.App) {
	api := app.Group("/api/expenses")
	api.Use(auth.AuthMiddleware)

	manage := auth.RequirePermission("expenses.manage")

	api.Get("/", GetExpensesAPI)
	api.Post("/", manage, CreateExpenseAPI)
	api.Put("/:id", manage, UpdateExpenseAPI)
	api.Delete("/:id", manage, DeleteExpenseAPI)

	categories := app.Group("/api/expense-categories")
	categories.Use(auth.AuthMiddleware)

	categories.Get("/", GetCategoriesAPI)
	categories.Post("/", manage, CreateCategoryAPI)
	categories.Put("/:id", manage, UpdateCategoryAPI)
	categories.Delete("/:id", manage, DeleteCategoryAPI)
}
