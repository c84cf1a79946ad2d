package models

import "time"

// Expense represents an association outgoing cost.
type Expense struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CategoryID     string     `json:"category_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Title          string     `json:"title" gorm:"not null" validate:"required"`
	Amount         float64    `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required,gt=0"`
	Date           time.Time  `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Notes          string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	DeletionReason string     `json:"deletion_reason,omitempty" gorm:"type:text"`
	DeletedBy      *string    `json:"deleted_by,omitempty" gorm:"type:uuid"`

	Category *ExpenseCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}

// ExpenseCategory groups expenses; it cannot be deleted while referenced.
type ExpenseCategory struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
