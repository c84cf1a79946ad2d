package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/ledger"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

// SetupPaymentRoutes wires the ledger endpoints. The store is injected so the
// handlers stay testable without a database.
func SetupPaymentRoutes(app *fiber.App, store ledger.Store) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, store)
	})

	api.Post("/", auth.RequirePermission("payments.register"), func(c *fiber.Ctx) error {
		return RegisterPaymentsAPI(c, store)
	})

	api.Post("/:id/cancel", auth.RequirePermission("payments.cancel"), func(c *fiber.Ctx) error {
		return CancelPaymentAPI(c, store)
	})

	api.Put("/:id", auth.RequirePermission("payments.update"), func(c *fiber.Ctx) error {
		return UpdatePaymentAPI(c, store)
	})

	// two-segment route must come before the single :id route
	api.Get("/:property_id/:year", func(c *fiber.Ctx) error {
		return PaidMonthsAPI(c, store)
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPaymentAPI(c, store)
	})
}
