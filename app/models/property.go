package models

import "time"

// Property represents a billable physical address inside the community.
type Property struct {
	ID             string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Community      string       `json:"community" gorm:"not null" validate:"required"`
	StreetID       string       `json:"street_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StreetNumber   string       `json:"street_number" gorm:"not null" validate:"required"`
	Type           PropertyType `json:"type" gorm:"not null;default:'house';type:varchar(10)"`
	ResidentID     *string      `json:"resident_id,omitempty" gorm:"index;type:uuid"`
	Comments       string       `json:"comments,omitempty" gorm:"type:text"`
	OverdueMonths  int          `json:"overdue_months" gorm:"not null;default:0"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time   `json:"deleted_at,omitempty" gorm:"index"`
	DeletionReason string       `json:"deletion_reason,omitempty" gorm:"type:text"`
	DeletedBy      *string      `json:"deleted_by,omitempty" gorm:"type:uuid"`

	Street   *Street   `json:"street,omitempty" gorm:"foreignKey:StreetID;references:ID"`
	Resident *Resident `json:"resident,omitempty" gorm:"foreignKey:ResidentID;references:ID"`
}
