package auth

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/database"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)

	api.Use(AuthMiddleware)
	api.Get("/me", MeAPI)
	api.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT (cookie or Bearer header) and stores the
// acting user's identity in request locals. Audit fields are always filled
// from these locals, never from ambient globals.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "No token found")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_roles", claims.Roles)

	return c.Next()
}

// RequirePermission gates a route behind a named capability. It runs after
// AuthMiddleware and consults the role/permission tables.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token found")
		}

		allowed, err := database.UserHasPermission(config.GetDB(), userID, permission)
		if err != nil {
			slog.Error("permission check failed", "user_id", userID, "permission", permission, "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Permission check failed")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}
