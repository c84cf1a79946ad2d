package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetStatsAPI(c, config.GetDB())
	})
	api.Get("/announcements", func(c *fiber.Ctx) error {
		return GetRecentAnnouncementsAPI(c, config.GetDB())
	})
}
