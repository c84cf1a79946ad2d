package properties

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupPropertyRoutes(app *fiber.App) {
	api := app.Group("/api/properties")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPropertiesAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPropertyAPI(c, config.GetDB())
	})

	manage := auth.RequirePermission("properties.manage")

	api.Post("/", manage, func(c *fiber.Ctx) error {
		return CreatePropertyAPI(c, config.GetDB())
	})

	api.Put("/:id", manage, func(c *fiber.Ctx) error {
		return UpdatePropertyAPI(c, config.GetDB())
	})

	api.Delete("/:id", manage, func(c *fiber.Ctx) error {
		return DeletePropertyAPI(c, config.GetDB())
	})

	api.Put("/:id/overdue", manage, func(c *fiber.Ctx) error {
		return SetOverdueMonthsAPI(c, config.GetDB())
	})
}
