// internal/models/vehicle.go
package models

import "time"

// Vehicle categories, matching the vehicle_category enum in the database.
const (
	CategorySedan   = "SEDAN"
	CategorySUV     = "SUV"
	CategoryVan     = "VAN"
	CategoryBus     = "BUS"
	CategoryCoaster = "COASTER"
	CategoryHiace   = "HIACE"
)

// Ownership types.
const (
	OwnershipOwned   = "OWNED"
	OwnershipPartner = "PARTNER"
)

// Vehicle belongs to a client company via OwnerCompanyID, or to the Cort
// managed fleet when OwnerCompanyID is null. Ownership never changes after
// creation; there is no transfer path.
type Vehicle struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	PlateNumber           string    `gorm:"uniqueIndex;not null" json:"plate_number"`
	Make                  string    `gorm:"not null" json:"make"`
	Model                 string    `gorm:"not null" json:"model"`
	Year                  int       `gorm:"not null" json:"year"`
	Color                 *string   `json:"color"`
	Category              string    `gorm:"not null" json:"category"`
	Ownership             string    `gorm:"not null" json:"ownership"`
	FuelAvgCity           float64   `json:"fuel_avg_city"`
	FuelAvgHighway        float64   `json:"fuel_avg_highway"`
	OwnerCompanyID        *uint     `json:"owner_company_id"`
	IsAvailableForPooling bool      `gorm:"default:false" json:"is_available_for_pooling"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	Company *Company `gorm:"foreignKey:OwnerCompanyID" json:"company,omitempty"`
}
