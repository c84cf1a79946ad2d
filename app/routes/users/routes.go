package users

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func SetupUserRoutes(app *fiber.App) {
	manage := auth.RequirePermission("users.manage")

	api := app.Group("/api/users")
	api.Use(auth.AuthMiddleware, manage)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetUsersAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetUserAPI(c, config.GetDB())
	})
	api.Post("/", func(c *fiber.Ctx) error {
		return CreateUserAPI(c, config.GetDB())
	})
	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateUserAPI(c, config.GetDB())
	})
	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteUserAPI(c, config.GetDB())
	})
	api.Put("/:id/roles", func(c *fiber.Ctx) error {
		return SetUserRolesAPI(c, config.GetDB())
	})

	rolesAPI := app.Group("/api/roles")
	rolesAPI.Use(auth.AuthMiddleware, manage)

	rolesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetRolesAPI(c, config.GetDB())
	})
	rolesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateRoleAPI(c, config.GetDB())
	})
	rolesAPI.Put("/:id/permissions", func(c *fiber.Ctx) error {
		return SetRolePermissionsAPI(c, config.GetDB())
	})

	permissionsAPI := app.Group("/api/permissions")
	permissionsAPI.Use(auth.AuthMiddleware, manage)

	permissionsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetPermissionsAPI(c, config.GetDB())
	})
}
