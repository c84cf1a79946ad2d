package messages

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupMessageRoutes(app *fiber.App) {
	api := app.Group("/api/messages")
	api.Use(auth.AuthMiddleware)

	api.Get("/inbox", func(c *fiber.Ctx) error {
		return GetInboxAPI(c, config.GetDB())
	})
	api.Get("/sent", func(c *fiber.Ctx) error {
		return GetSentAPI(c, config.GetDB())
	})
	api.Get("/unread-count", func(c *fiber.Ctx) error {
		return UnreadCountAPI(c, config.GetDB())
	})
	api.Post("/", func(c *fiber.Ctx) error {
		return SendMessageAPI(c, config.GetDB())
	})
	api.Put("/:id/read", func(c *fiber.Ctx) error {
		return MarkReadAPI(c, config.GetDB())
	})

	announcements := app.Group("/api/announcements")
	announcements.Use(auth.AuthMiddleware)

	announcements.Get("/", func(c *fiber.Ctx) error {
		return GetAnnouncementsAPI(c, config.GetDB())
	})
	announcements.Post("/", auth.RequirePermission("announcements.manage"), func(c *fiber.Ctx) error {
		return CreateAnnouncementAPI(c, config.GetDB())
	})
	announcements.Delete("/:id", auth.RequirePermission("announcements.manage"), func(c *fiber.Ctx) error {
		return DeleteAnnouncementAPI(c, config.GetDB())
	})
}
