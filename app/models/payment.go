package models

import "time"

// Payment is one (property, fee, month, year) ledger entry. AmountPaid is the
// fee amount in effect at creation time and is never recomputed afterwards.
// A payment is "active" while its status is not cancelled and it is not soft
// deleted; only active rows block re-registration of their month.
type Payment struct {
	ID                 string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PropertyID         string        `json:"property_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeID              string        `json:"fee_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Month              int           `json:"month" gorm:"not null" validate:"required,min=1,max=12"`
	Year               int           `json:"year" gorm:"not null;index" validate:"required"`
	PaymentDate        time.Time     `json:"payment_date" gorm:"not null;index;type:date" validate:"required"`
	AmountPaid         float64       `json:"amount_paid" gorm:"not null;type:numeric(12,2)"`
	Status             PaymentStatus `json:"status" gorm:"not null;default:'paid';index;type:varchar(10)"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CancelledBy        *string       `json:"cancelled_by,omitempty" gorm:"type:uuid"`
	CreatedAt          time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt          *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
	Fee      *Fee      `json:"fee,omitempty" gorm:"foreignKey:FeeID;references:ID"`
}

// IsActive reports whether the entry still settles its billing month.
func (p *Payment) IsActive() bool {
	return p.Status != PaymentCancelled && p.DeletedAt == nil
}
