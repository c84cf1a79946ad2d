package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupFeeRoutes(app *fiber.App) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeAPI(c, config.GetDB())
	})

	manage := auth.RequirePermission("fees.manage")

	api.Post("/", manage, func(c *fiber.Ctx) error {
		return CreateFeeAPI(c, config.GetDB())
	})

	api.Put("/:id", manage, func(c *fiber.Ctx) error {
		return UpdateFeeAPI(c, config.GetDB())
	})

	api.Delete("/:id", manage, func(c *fiber.Ctx) error {
		return DeleteFeeAPI(c, config.GetDB())
	})
}
