package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanketkurve/portfolio-backend/models"
)

type SkillRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSkillRepo(db *gorm.DB, now func() time.Time) *SkillRepo {
	return &SkillRepo{db: db, now: now}
}

// ListPublic returns visible skills by ascending display order.
func (r *SkillRepo) ListPublic(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("sort_order asc").
		Limit(MaxPageSize).
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) GetPublic(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	return first[models.Skill](r.db.WithContext(ctx).Where("visible = ?", true), id)
}

// ListAdmin includes hidden skills and keeps the public ordering.
func (r *SkillRepo) ListAdmin(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := r.db.WithContext(ctx).
		Order("sort_order asc").
		Limit(MaxPageSize).
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	return first[models.Skill](r.db.WithContext(ctx), id)
}

func (r *SkillRepo) Create(ctx context.Context, in models.SkillInput) (*models.Skill, error) {
	skill := in.Skill()
	skill.ID = uuid.New()
	skill.CreatedAt = r.now().UTC()

	if err := r.db.WithContext(ctx).Create(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepo) Update(ctx context.Context, id uuid.UUID, patch models.SkillPatch) (*models.Skill, error) {
	tx := r.db.WithContext(ctx)

	skill, err := first[models.Skill](tx, id)
	if err != nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return skill, nil
	}

	if err := tx.Model(&models.Skill{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, err
	}
	return first[models.Skill](tx, id)
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Skill](r.db.WithContext(ctx), id)
}

func (r *SkillRepo) Count(ctx context.Context) (int64, error) {
	return count[models.Skill](r.db.WithContext(ctx))
}
