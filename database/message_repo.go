package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanketkurve/portfolio-backend/models"
)

type MessageRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMessageRepo(db *gorm.DB, now func() time.Time) *MessageRepo {
	return &MessageRepo{db: db, now: now}
}

// Create stores a contact submission as unread. Client address and user
// agent come from meta, never from the payload.
func (r *MessageRepo) Create(ctx context.Context, in models.MessageInput, meta models.RequestMeta) (*models.Message, error) {
	message := models.Message{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.MessageStatusUnread,
		CreatedAt: r.now().UTC(),
		IP:        optionalString(meta.IP),
		UserAgent: optionalString(meta.UserAgent),
	}

	if err := r.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListAdmin returns messages newest first.
func (r *MessageRepo) ListAdmin(ctx context.Context) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(MaxPageSize).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	return first[models.Message](r.db.WithContext(ctx), id)
}

// SetStatus overwrites the status. Any string is accepted.
func (r *MessageRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Message](r.db.WithContext(ctx), id)
}

func (r *MessageRepo) Count(ctx context.Context) (int64, error) {
	return count[models.Message](r.db.WithContext(ctx))
}

func (r *MessageRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return count[models.Message](r.db.WithContext(ctx).Where("status = ?", status))
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
