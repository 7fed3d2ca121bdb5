package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Skill is a listed competency. Projects holds project names as free text;
// nothing keeps it in sync with the projects table.
type Skill struct {
	ID                uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Name              string                      `json:"name" gorm:"type:text;not null"`
	Category          string                      `json:"category" gorm:"type:text;not null"`
	Level             int                         `json:"level" gorm:"not null"`
	Icon              *string                     `json:"icon,omitempty" gorm:"type:text"`
	YearsOfExperience *float64                    `json:"yearsOfExperience,omitempty"`
	Projects          datatypes.JSONSlice[string] `json:"projects"`
	Order             int                         `json:"order" gorm:"column:sort_order;not null;index"`
	Visible           bool                        `json:"visible" gorm:"not null;index"`
	CreatedAt         time.Time                   `json:"createdAt" gorm:"not null"`
}

type SkillInput struct {
	Name              string   `json:"name" validate:"required"`
	Category          string   `json:"category" validate:"required"`
	Level             *int     `json:"level"`
	Icon              *string  `json:"icon"`
	YearsOfExperience *float64 `json:"yearsOfExperience"`
	Projects          []string `json:"projects"`
	Order             *int     `json:"order"`
	Visible           *bool    `json:"visible"`
}

func (in SkillInput) Skill() Skill {
	return Skill{
		Name:              in.Name,
		Category:          in.Category,
		Level:             valueOr(in.Level, 50),
		Icon:              in.Icon,
		YearsOfExperience: in.YearsOfExperience,
		Projects:          stringList(in.Projects),
		Order:             valueOr(in.Order, 0),
		Visible:           valueOr(in.Visible, true),
	}
}

type SkillPatch struct {
	Name              Optional[string]   `json:"name"`
	Category          Optional[string]   `json:"category"`
	Level             Optional[int]      `json:"level"`
	Icon              Optional[string]   `json:"icon"`
	YearsOfExperience Optional[float64]  `json:"yearsOfExperience"`
	Projects          Optional[[]string] `json:"projects"`
	Order             Optional[int]      `json:"order"`
	Visible           Optional[bool]     `json:"visible"`
}

func (p SkillPatch) Changes() map[string]any {
	changes := changeSet{}
	setField(changes, "name", p.Name)
	setField(changes, "category", p.Category)
	setField(changes, "level", p.Level)
	setField(changes, "icon", p.Icon)
	setField(changes, "years_of_experience", p.YearsOfExperience)
	setList(changes, "projects", p.Projects)
	setField(changes, "sort_order", p.Order)
	setField(changes, "visible", p.Visible)
	return changes
}
