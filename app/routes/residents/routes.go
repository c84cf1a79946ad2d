package residents

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupResidentRoutes(app *fiber.App) {
	api := app.Group("/api/residents")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetResidentsAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetResidentAPI(c, config.GetDB())
	})

	manage := auth.RequirePermission("residents.manage")

	api.Post("/", manage, func(c *fiber.Ctx) error {
		return CreateResidentAPI(c, config.GetDB())
	})

	api.Put("/:id", manage, func(c *fiber.Ctx) error {
		return UpdateResidentAPI(c, config.GetDB())
	})

	api.Delete("/:id", manage, func(c *fiber.Ctx) error {
		return DeleteResidentAPI(c, config.GetDB())
	})
}
