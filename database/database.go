package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sanketkurve/portfolio-backend/models"
)

// ErrNotFound is returned when no row matches the requested id or key.
var ErrNotFound = errors.New("record not found")

// MaxPageSize caps every list query.
const MaxPageSize = 100

type Database struct {
	db              *gorm.DB
	projectRepo     *ProjectRepo
	skillRepo       *SkillRepo
	certificateRepo *CertificateRepo
	messageRepo     *MessageRepo
	adminRepo       *AdminRepo
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock replaces time.Now for every timestamp the repositories write.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB, opts ...Option) Database {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return Database{
		db:              db,
		projectRepo:     NewProjectRepo(db, o.now),
		skillRepo:       NewSkillRepo(db, o.now),
		certificateRepo: NewCertificateRepo(db, o.now),
		messageRepo:     NewMessageRepo(db, o.now),
		adminRepo:       NewAdminRepo(db, o.now),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) CertificateRepo() *CertificateRepo {
	return d.certificateRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

// DB returns the underlying connection, for tooling such as code generation.
func (d Database) DB() *gorm.DB {
	return d.db
}

// Migrate creates or alters tables for every model.
func (d Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats counts every collection for the admin dashboard. Counts run
// concurrently and are live, never cached.
func (d Database) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalProjects, err = d.projectRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalSkills, err = d.skillRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalCertificates, err = d.certificateRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalMessages, err = d.messageRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UnreadMessages, err = d.messageRepo.CountByStatus(ctx, models.MessageStatusUnread)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}

func first[T any](tx *gorm.DB, id uuid.UUID) (*T, error) {
	var out T
	err := tx.Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func deleteByID[T any](tx *gorm.DB, id uuid.UUID) error {
	var model T
	result := tx.Where("id = ?", id).Delete(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func count[T any](tx *gorm.DB) (int64, error) {
	var model T
	var n int64
	err := tx.Model(&model).Count(&n).Error
	return n, err
}
