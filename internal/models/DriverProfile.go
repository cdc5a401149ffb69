package models

import "time"

// DriverProfile links a DRIVER user to the vehicle they operate.
// Counted by the vehicle delete guard.
type DriverProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	VehicleID     *uint     `gorm:"index" json:"vehicle_id"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
