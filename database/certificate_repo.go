package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanketkurve/portfolio-backend/models"
)

type CertificateRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCertificateRepo(db *gorm.DB, now func() time.Time) *CertificateRepo {
	return &CertificateRepo{db: db, now: now}
}

// ListPublic returns visible certificates by ascending priority.
func (r *CertificateRepo) ListPublic(ctx context.Context) ([]models.Certificate, error) {
	certificates := []models.Certificate{}
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("priority asc").
		Limit(MaxPageSize).
		Find(&certificates).Error
	return certificates, err
}

func (r *CertificateRepo) GetPublic(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	return first[models.Certificate](r.db.WithContext(ctx).Where("visible = ?", true), id)
}

func (r *CertificateRepo) ListAdmin(ctx context.Context) ([]models.Certificate, error) {
	certificates := []models.Certificate{}
	err := r.db.WithContext(ctx).
		Order("priority asc").
		Limit(MaxPageSize).
		Find(&certificates).Error
	return certificates, err
}

func (r *CertificateRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	return first[models.Certificate](r.db.WithContext(ctx), id)
}

func (r *CertificateRepo) Create(ctx context.Context, in models.CertificateInput) (*models.Certificate, error) {
	certificate := in.Certificate()
	certificate.ID = uuid.New()
	certificate.CreatedAt = r.now().UTC()

	if err := r.db.WithContext(ctx).Create(&certificate).Error; err != nil {
		return nil, err
	}
	return &certificate, nil
}

func (r *CertificateRepo) Update(ctx context.Context, id uuid.UUID, patch models.CertificatePatch) (*models.Certificate, error) {
	tx := r.db.WithContext(ctx)

	certificate, err := first[models.Certificate](tx, id)
	if err != nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return certificate, nil
	}

	if err := tx.Model(&models.Certificate{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, err
	}
	return first[models.Certificate](tx, id)
}

func (r *CertificateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Certificate](r.db.WithContext(ctx), id)
}

func (r *CertificateRepo) Count(ctx context.Context) (int64, error) {
	return count[models.Certificate](r.db.WithContext(ctx))
}
