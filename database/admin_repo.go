package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanketkurve/portfolio-backend/models"
)

type AdminRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAdminRepo(db *gorm.DB, now func() time.Time) *AdminRepo {
	return &AdminRepo{db: db, now: now}
}

func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create stores an admin with an already hashed password. Role defaults to admin.
func (r *AdminRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.AdminUser, error) {
	admin := models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		CreatedAt:    r.now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetPasswordHash replaces the stored hash for username.
func (r *AdminRepo) SetPasswordHash(ctx context.Context, username, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdminRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login", at.UTC()).Error
}

func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	return count[models.AdminUser](r.db.WithContext(ctx))
}
