package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is a credential shown on the site. Date is kept as the
// free-form text the owner entered ("March 2024", "2023").
type Certificate struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	Issuer       string    `json:"issuer" gorm:"type:text;not null"`
	Date         string    `json:"date" gorm:"type:text;not null"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	CredentialID *string   `json:"credentialId,omitempty" gorm:"type:text"`
	VerifyURL    *string   `json:"verifyUrl,omitempty" gorm:"type:text"`
	ImageURL     *string   `json:"imageUrl,omitempty" gorm:"type:text"`
	Status       string    `json:"status" gorm:"type:text;not null"`
	Category     *string   `json:"category,omitempty" gorm:"type:text"`
	Priority     int       `json:"priority" gorm:"not null;index"`
	Visible      bool      `json:"visible" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null"`
}

type CertificateInput struct {
	Name         string  `json:"name" validate:"required"`
	Issuer       string  `json:"issuer" validate:"required"`
	Date         string  `json:"date" validate:"required"`
	Description  *string `json:"description"`
	CredentialID *string `json:"credentialId"`
	VerifyURL    *string `json:"verifyUrl"`
	ImageURL     *string `json:"imageUrl"`
	Status       *string `json:"status"`
	Category     *string `json:"category"`
	Priority     *int    `json:"priority"`
	Visible      *bool   `json:"visible"`
}

func (in CertificateInput) Certificate() Certificate {
	return Certificate{
		Name:         in.Name,
		Issuer:       in.Issuer,
		Date:         in.Date,
		Description:  in.Description,
		CredentialID: in.CredentialID,
		VerifyURL:    in.VerifyURL,
		ImageURL:     in.ImageURL,
		Status:       valueOr(in.Status, "active"),
		Category:     in.Category,
		Priority:     valueOr(in.Priority, 0),
		Visible:      valueOr(in.Visible, true),
	}
}

type CertificatePatch struct {
	Name         Optional[string] `json:"name"`
	Issuer       Optional[string] `json:"issuer"`
	Date         Optional[string] `json:"date"`
	Description  Optional[string] `json:"description"`
	CredentialID Optional[string] `json:"credentialId"`
	VerifyURL    Optional[string] `json:"verifyUrl"`
	ImageURL     Optional[string] `json:"imageUrl"`
	Status       Optional[string] `json:"status"`
	Category     Optional[string] `json:"category"`
	Priority     Optional[int]    `json:"priority"`
	Visible      Optional[bool]   `json:"visible"`
}

func (p CertificatePatch) Changes() map[string]any {
	changes := changeSet{}
	setField(changes, "name", p.Name)
	setField(changes, "issuer", p.Issuer)
	setField(changes, "date", p.Date)
	setField(changes, "description", p.Description)
	setField(changes, "credential_id", p.CredentialID)
	setField(changes, "verify_url", p.VerifyURL)
	setField(changes, "image_url", p.ImageURL)
	setField(changes, "status", p.Status)
	setField(changes, "category", p.Category)
	setField(changes, "priority", p.Priority)
	setField(changes, "visible", p.Visible)
	return changes
}
