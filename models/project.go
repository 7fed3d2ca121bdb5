package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project
type Project struct {
	ID              uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string                      `json:"title" gorm:"type:text;not null"`
	Tagline         string                      `json:"tagline" gorm:"type:text;not null"`
	Description     string                      `json:"description" gorm:"type:text;not null"`
	LongDescription *string                     `json:"longDescription,omitempty" gorm:"type:text"`
	Tech            datatypes.JSONSlice[string] `json:"tech"`
	Features        datatypes.JSONSlice[string] `json:"features"`
	DemoURL         *string                     `json:"demoUrl,omitempty" gorm:"type:text"`
	GithubURL       *string                     `json:"githubUrl,omitempty" gorm:"type:text"`
	ImageURL        *string                     `json:"imageUrl,omitempty" gorm:"type:text"`
	VideoURL        *string                     `json:"videoUrl,omitempty" gorm:"type:text"`
	Year            int                         `json:"year" gorm:"not null"`
	Category        string                      `json:"category" gorm:"type:text;not null"`
	Status          string                      `json:"status" gorm:"type:text;not null"`
	Featured        bool                        `json:"featured" gorm:"not null"`
	Visible         bool                        `json:"visible" gorm:"not null;index"`
	CreatedAt       time.Time                   `json:"createdAt" gorm:"not null;index"`
	UpdatedAt       time.Time                   `json:"updatedAt" gorm:"not null"`
}

// ProjectInput is the create payload.
type ProjectInput struct {
	Title           string   `json:"title" validate:"required"`
	Tagline         string   `json:"tagline" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	LongDescription *string  `json:"longDescription"`
	Tech            []string `json:"tech"`
	Features        []string `json:"features"`
	DemoURL         *string  `json:"demoUrl"`
	GithubURL       *string  `json:"githubUrl"`
	ImageURL        *string  `json:"imageUrl"`
	VideoURL        *string  `json:"videoUrl"`
	Year            *int     `json:"year" validate:"required"`
	Category        *string  `json:"category"`
	Status          *string  `json:"status"`
	Featured        *bool    `json:"featured"`
	Visible         *bool    `json:"visible"`
}

// Project builds the entity with defaults applied. Identity and timestamps
// are left for the repository.
func (in ProjectInput) Project() Project {
	p := Project{
		Title:           in.Title,
		Tagline:         in.Tagline,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Tech:            stringList(in.Tech),
		Features:        stringList(in.Features),
		DemoURL:         in.DemoURL,
		GithubURL:       in.GithubURL,
		ImageURL:        in.ImageURL,
		VideoURL:        in.VideoURL,
		Category:        valueOr(in.Category, "web"),
		Status:          valueOr(in.Status, "completed"),
		Featured:        valueOr(in.Featured, false),
		Visible:         valueOr(in.Visible, true),
	}
	if in.Year != nil {
		p.Year = *in.Year
	}
	return p
}

// ProjectPatch is the partial update payload.
type ProjectPatch struct {
	Title           Optional[string]   `json:"title"`
	Tagline         Optional[string]   `json:"tagline"`
	Description     Optional[string]   `json:"description"`
	LongDescription Optional[string]   `json:"longDescription"`
	Tech            Optional[[]string] `json:"tech"`
	Features        Optional[[]string] `json:"features"`
	DemoURL         Optional[string]   `json:"demoUrl"`
	GithubURL       Optional[string]   `json:"githubUrl"`
	ImageURL        Optional[string]   `json:"imageUrl"`
	VideoURL        Optional[string]   `json:"videoUrl"`
	Year            Optional[int]      `json:"year"`
	Category        Optional[string]   `json:"category"`
	Status          Optional[string]   `json:"status"`
	Featured        Optional[bool]     `json:"featured"`
	Visible         Optional[bool]     `json:"visible"`
}

// Changes maps column names to the values this patch sets.
func (p ProjectPatch) Changes() map[string]any {
	changes := changeSet{}
	setField(changes, "title", p.Title)
	setField(changes, "tagline", p.Tagline)
	setField(changes, "description", p.Description)
	setField(changes, "long_description", p.LongDescription)
	setList(changes, "tech", p.Tech)
	setList(changes, "features", p.Features)
	setField(changes, "demo_url", p.DemoURL)
	setField(changes, "github_url", p.GithubURL)
	setField(changes, "image_url", p.ImageURL)
	setField(changes, "video_url", p.VideoURL)
	setField(changes, "year", p.Year)
	setField(changes, "category", p.Category)
	setField(changes, "status", p.Status)
	setField(changes, "featured", p.Featured)
	setField(changes, "visible", p.Visible)
	return changes
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
