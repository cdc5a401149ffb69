// internal/models/company.go
package models

import "time"

// Company is a client organisation on the platform. It owns users and
// vehicles; routes reference it only for delete-safety checks.
type Company struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name" binding:"required"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email" binding:"required,email"`
	NtnNumber          *string   `json:"ntn_number"`
	ContactPerson      *string   `json:"contact_person"`
	Address            *string   `json:"address"`
	LogoURL            *string   `json:"logo_url"`
	IsShuttleEnabled   bool      `gorm:"default:false" json:"is_shuttle_enabled"`
	IsChauffeurEnabled bool      `gorm:"default:false" json:"is_chauffeur_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Users    []User    `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Vehicles []Vehicle `gorm:"foreignKey:OwnerCompanyID" json:"vehicles,omitempty"`
	Routes   []Route   `gorm:"foreignKey:CompanyID" json:"routes,omitempty"`
}
