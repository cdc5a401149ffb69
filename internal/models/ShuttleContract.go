package models

import "time"

// ShuttleContract assigns a vehicle to a client shuttle contract.
// Counted by the vehicle delete guard.
type ShuttleContract struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index" json:"company_id"`
	VehicleID *uint     `gorm:"index" json:"vehicle_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
