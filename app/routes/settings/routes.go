package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupSettingRoutes(app *fiber.App) {
	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSettingsAPI(c, config.GetDB())
	})
	api.Put("/", auth.RequirePermission("settings.manage"), func(c *fiber.Ctx) error {
		return UpsertSettingAPI(c, config.GetDB())
	})
}
