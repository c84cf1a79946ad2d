package models

import "time"

// Message is an internal note between two users.
type Message struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SenderID    string     `json:"sender_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	RecipientID string     `json:"recipient_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body" gorm:"not null;type:text" validate:"required"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Sender    *User `json:"sender,omitempty" gorm:"foreignKey:SenderID;references:ID"`
	Recipient *User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID;references:ID"`
}

// Announcement is a community-wide notice shown on the dashboard.
type Announcement struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Title     string     `json:"title" gorm:"not null" validate:"required"`
	Body      string     `json:"body" gorm:"not null;type:text" validate:"required"`
	StartsAt  time.Time  `json:"starts_at" gorm:"not null;index"`
	AuthorID  string     `json:"author_id" gorm:"not null;type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
