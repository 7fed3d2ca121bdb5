package models

import (
	"time"

	"github.com/google/uuid"
)

// Message statuses the admin inbox understands. Other values are stored as given.
const (
	MessageStatusUnread   = "unread"
	MessageStatusRead     = "read"
	MessageStatusArchived = "archived"
)

// Message is a contact form submission
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Subject   *string   `json:"subject,omitempty" gorm:"type:text"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"type:text;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"`
	IP        *string   `json:"ip,omitempty" gorm:"column:ip;type:text"`
	UserAgent *string   `json:"userAgent,omitempty" gorm:"type:text"`
}

// MessageInput is what the public contact form may send.
type MessageInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject"`
	Message string  `json:"message" validate:"required"`
}

// RequestMeta is taken from the HTTP request, never from the payload.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// StatusUpdate is the body of a message status change.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}
