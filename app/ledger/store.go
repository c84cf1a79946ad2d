package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/Mendozape/crud-sub000/app/models"
)

// Sentinel errors surfaced by Store implementations so handlers can map them
// to the right HTTP status without parsing driver errors.
var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrFeeNotFound      = errors.New("fee not found")
	ErrAlreadyCancelled = errors.New("payment already cancelled")
	ErrPeriodSettled    = errors.New("another active payment already covers that period")
)

// RegisterParams describes one batch month-registration request. Status is
// paid for normal receipts or condoned for forgiven months; both settle the
// month.
type RegisterParams struct {
	PropertyID  string
	FeeID       string
	Year        int
	PaymentDate time.Time
	Months      []int
	Status      models.PaymentStatus
}

// UpdateParams carries the limited edits allowed while a payment is active.
// Nil fields are left untouched. AmountPaid is deliberately absent.
type UpdateParams struct {
	PropertyID  *string
	FeeID       *string
	PaymentDate *time.Time
}

// ListFilter narrows the statement listing.
type ListFilter struct {
	PropertyID string
	Year       int
	Status     string
}

// Store is the persistence boundary of the payment ledger. The production
// implementation lives in app/database; tests use an in-memory fake.
type Store interface {
	// RegisterMonths creates one active ledger row per requested month that
	// is not already settled for (property, fee, year), snapshotting the
	// fee's current amount. Months already settled are skipped silently.
	// The whole batch commits atomically; the returned slice holds only the
	// rows created by this call and is empty when every month was settled.
	RegisterMonths(ctx context.Context, p RegisterParams) ([]*models.Payment, error)

	// CancelPayment moves one active payment to cancelled, recording reason,
	// timestamp and actor. Cancellation is terminal.
	CancelPayment(ctx context.Context, id, reason, actorID string) (*models.Payment, error)

	// UpdatePayment applies the limited active-state edits. Moving the
	// payment onto a (property, fee, month, year) tuple that another active
	// row already settles fails with ErrPeriodSettled.
	UpdatePayment(ctx context.Context, id string, upd UpdateParams) (*models.Payment, error)

	GetPayment(ctx context.Context, id string) (*models.Payment, error)

	// PaidMonths returns the distinct settled months for a property/year,
	// optionally narrowed to one fee. Cancelled rows never appear.
	PaidMonths(ctx context.Context, propertyID string, year int, feeID string) ([]int, error)

	ListPayments(ctx context.Context, f ListFilter) ([]*models.Payment, error)
}
