package models

import "time"

// Fee is a named recurring charge type. Amount may change over time; ledger
// entries snapshot the amount at payment time and never read it back from here.
type Fee struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name           string     `json:"name" gorm:"not null" validate:"required"`
	Description    string     `json:"description,omitempty" gorm:"type:text"`
	Amount         float64    `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required,gt=0"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	DeletionReason string     `json:"deletion_reason,omitempty" gorm:"type:text"`
	DeletedBy      *string    `json:"deleted_by,omitempty" gorm:"type:uuid"`
}
