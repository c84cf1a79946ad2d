package payments

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/ledger"
	"github.com/Mendozape/crud-sub000/app/models"
)

const minCancellationReason = 5

type RegisterRequest struct {
	PropertyID  string `json:"property_id"`
	FeeID       string `json:"fee_id"`
	Months      []int  `json:"months"`
	Year        int    `json:"year"`
	PaymentDate string `json:"payment_date"`     // YYYY-MM-DD
	Status      string `json:"status,omitempty"` // paid (default) or condoned
}

// RegisterPaymentsAPI registers a batch of billing months for one property
// and fee. Months that already have an active entry are skipped; the response
// lists only the rows created by this call.
func RegisterPaymentsAPI(c *fiber.Ctx, store ledger.Store) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.PropertyID == "" || req.FeeID == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "property_id and fee_id are required")
	}
	if req.Year < 2000 || req.Year > 2100 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "year is out of range")
	}
	months, ok := ledger.NormalizeMonths(req.Months)
	if !ok {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "months must be a non-empty set of values between 1 and 12")
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "payment_date must be YYYY-MM-DD")
	}
	status := models.PaymentPaid
	switch req.Status {
	case "", string(models.PaymentPaid):
	case string(models.PaymentCondoned):
		status = models.PaymentCondoned
	default:
		return fiber.NewError(fiber.StatusUnprocessableEntity, "status must be paid or condoned")
	}

	created, err := store.RegisterMonths(c.Context(), ledger.RegisterParams{
		PropertyID:  req.PropertyID,
		FeeID:       req.FeeID,
		Year:        req.Year,
		PaymentDate: paymentDate,
		Months:      months,
		Status:      status,
	})
	switch {
	case errors.Is(err, ledger.ErrFeeNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Fee not found")
	case errors.Is(err, ledger.ErrPropertyNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	case err != nil:
		slog.Error("payment registration failed", "property_id", req.PropertyID, "fee_id", req.FeeID, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register payments")
	}

	if len(created) == 0 {
		// stale client form: every requested month is already settled
		return fiber.NewError(fiber.StatusUnprocessableEntity, "All requested months are already paid")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// CancelPaymentAPI performs the terminal paid→cancelled transition with an
// audit trail. The freed month may then be registered again.
func CancelPaymentAPI(c *fiber.Ctx, store ledger.Store) error {
	paymentID := c.Params("id")

	type CancelRequest struct {
		Reason string `json:"reason"`
	}
	var req CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	reason := strings.TrimSpace(req.Reason)
	if len(reason) < minCancellationReason {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Cancellation reason must be at least 5 characters")
	}

	actorID, _ := c.Locals("user_id").(string)

	payment, err := store.CancelPayment(c.Context(), paymentID, reason, actorID)
	switch {
	case errors.Is(err, ledger.ErrPaymentNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Payment not found")
	case errors.Is(err, ledger.ErrAlreadyCancelled):
		return fiber.NewError(fiber.StatusBadRequest, "Payment is already cancelled")
	case err != nil:
		slog.Error("payment cancellation failed", "payment_id", paymentID, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payment,
		"message": "Payment cancelled successfully",
	})
}

// UpdatePaymentAPI applies the limited edits allowed on an active payment:
// property, fee and payment date. The amount snapshot never changes.
func UpdatePaymentAPI(c *fiber.Ctx, store ledger.Store) error {
	paymentID := c.Params("id")

	type UpdateRequest struct {
		PropertyID  *string `json:"property_id"`
		FeeID       *string `json:"fee_id"`
		PaymentDate *string `json:"payment_date"`
	}
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	upd := ledger.UpdateParams{PropertyID: req.PropertyID, FeeID: req.FeeID}
	if req.PaymentDate != nil {
		d, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "payment_date must be YYYY-MM-DD")
		}
		upd.PaymentDate = &d
	}

	payment, err := store.UpdatePayment(c.Context(), paymentID, upd)
	switch {
	case errors.Is(err, ledger.ErrPaymentNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Payment not found")
	case errors.Is(err, ledger.ErrAlreadyCancelled):
		return fiber.NewError(fiber.StatusBadRequest, "Cancelled payments cannot be edited")
	case errors.Is(err, ledger.ErrPeriodSettled):
		return fiber.NewError(fiber.StatusConflict, "Another active payment already covers that month")
	case err != nil:
		slog.Error("payment update failed", "payment_id", paymentID, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment")
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// PaidMonthsAPI returns the settled months for a property and year, used by
// the client to disable already-paid checkboxes. Cancelled months reappear
// as payable immediately.
func PaidMonthsAPI(c *fiber.Ctx, store ledger.Store) error {
	propertyID := c.Params("property_id")
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 || year > 2100 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "year is out of range")
	}
	feeID := c.Query("fee_id")

	months, err := store.PaidMonths(c.Context(), propertyID, year, feeID)
	if err != nil {
		slog.Error("paid months lookup failed", "property_id", propertyID, "year", year, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch paid months")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"months":  months,
	})
}

// GetPaymentsAPI lists ledger entries for statement views.
func GetPaymentsAPI(c *fiber.Ctx, store ledger.Store) error {
	filter := ledger.ListFilter{
		PropertyID: c.Query("property_id"),
		Year:       c.QueryInt("year", 0),
		Status:     c.Query("status"),
	}

	list, err := store.ListPayments(c.Context(), filter)
	if err != nil {
		slog.Error("payment listing failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

// GetPaymentAPI returns one ledger entry, cancelled ones included; history
// stays queryable after cancellation.
func GetPaymentAPI(c *fiber.Ctx, store ledger.Store) error {
	payment, err := store.GetPayment(c.Context(), c.Params("id"))
	if errors.Is(err, ledger.ErrPaymentNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Payment not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}
