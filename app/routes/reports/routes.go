package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupReportRoutes(app *fiber.App) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware, auth.RequirePermission("reports.view"))

	api.Get("/debtors", func(c *fiber.Ctx) error {
		return GetDebtorsAPI(c, config.GetDB())
	})
	api.Get("/debtors/export", func(c *fiber.Ctx) error {
		return ExportDebtorsAPI(c, config.GetDB())
	})
	api.Get("/income", func(c *fiber.Ctx) error {
		return GetIncomeAPI(c, config.GetDB())
	})
}
