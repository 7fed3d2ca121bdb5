package models

import (
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// AdminUser is an identity allowed into the admin surface.
type AdminUser struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string     `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Email        string     `json:"email" gorm:"type:text;not null"`
	PasswordHash string     `json:"-" gorm:"type:text;not null"`
	Role         string     `json:"role" gorm:"type:text;not null"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"not null"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DashboardStats are live counts for the admin dashboard.
type DashboardStats struct {
	TotalProjects     int64 `json:"totalProjects"`
	TotalSkills       int64 `json:"totalSkills"`
	TotalCertificates int64 `json:"totalCertificates"`
	TotalMessages     int64 `json:"totalMessages"`
	UnreadMessages    int64 `json:"unreadMessages"`
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&Project{},
		&Skill{},
		&Certificate{},
		&Message{},
		&AdminUser{},
	}
}
