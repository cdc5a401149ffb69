package models

import "time"

// Route is a shuttle service path operated for a company, optionally with an
// assigned vehicle. The company and vehicle modules only count routes when
// guarding deletes; route management itself lives elsewhere.
type Route struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CompanyID   *uint     `json:"company_id"`
	VehicleID   *uint     `json:"vehicle_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
