package streets

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupStreetRoutes(app *fiber.App) {
	api := app.Group("/api/streets")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetStreetsAPI(c, config.GetDB())
	})

	manage := auth.RequirePermission("streets.manage")

	api.Post("/", manage, func(c *fiber.Ctx) error {
		return CreateStreetAPI(c, config.GetDB())
	})

	api.Put("/:id", manage, func(c *fiber.Ctx) error {
		return UpdateStreetAPI(c, config.GetDB())
	})

	api.Delete("/:id", manage, func(c *fiber.Ctx) error {
		return DeleteStreetAPI(c, config.GetDB())
	})
}
