package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanketkurve/portfolio-backend/models"
)

type ProjectRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProjectRepo(db *gorm.DB, now func() time.Time) *ProjectRepo {
	return &ProjectRepo{db: db, now: now}
}

// ListPublic returns visible projects in insertion order.
func (r *ProjectRepo) ListPublic(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at asc").
		Limit(MaxPageSize).
		Find(&projects).Error
	return projects, err
}

// GetPublic returns a project only when it is visible.
func (r *ProjectRepo) GetPublic(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return first[models.Project](r.db.WithContext(ctx).Where("visible = ?", true), id)
}

// ListAdmin returns every project, newest first.
func (r *ProjectRepo) ListAdmin(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(MaxPageSize).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project regardless of visibility.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return first[models.Project](r.db.WithContext(ctx), id)
}

// Create inserts a new project with defaults, id and timestamps assigned.
func (r *ProjectRepo) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	project := in.Project()
	now := r.now().UTC()
	project.ID = uuid.New()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies the fields set in patch and refreshes updatedAt. An empty
// patch writes nothing and returns the stored project.
func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	tx := r.db.WithContext(ctx)

	project, err := first[models.Project](tx, id)
	if err != nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return project, nil
	}
	changes["updated_at"] = r.now().UTC()

	if err := tx.Model(&models.Project{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, err
	}
	return first[models.Project](tx, id)
}

// Delete removes a project by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Project](r.db.WithContext(ctx), id)
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	return count[models.Project](r.db.WithContext(ctx))
}
