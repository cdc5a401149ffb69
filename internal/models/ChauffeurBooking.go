package models

import "time"

// ChauffeurBooking is a chauffeur-service booking against a vehicle.
// Counted by the vehicle delete guard.
type ChauffeurBooking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VehicleID uint      `gorm:"index" json:"vehicle_id"`
	UserID    string    `gorm:"type:uuid;index" json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
