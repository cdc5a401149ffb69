package models

import "time"

// Roles match the user_role enum in the database. There is no hierarchy:
// a route allows exactly the roles it enumerates.
const (
	RoleSuperAdmin   = "SUPER_ADMIN"
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleEmployee     = "EMPLOYEE"
	RoleDriver       = "DRIVER"
)

// Account statuses. Only ACTIVE may authenticate.
const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusDeleted   = "DELETED"
)

// User is the local directory record for an identity-provider subject.
// The primary key is the provider's subject id (UUID), so a verified token
// maps straight onto this row.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Phone     *string   `gorm:"uniqueIndex" json:"phone"`
	Role      string    `gorm:"not null" json:"role"`
	CompanyID *uint     `json:"company_id"`
	Status    string    `gorm:"not null" json:"account_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthenticatedUser is the request-scoped view of a User built by the auth
// gate on every request. It is never persisted or cached.
type AuthenticatedUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	CompanyID *uint   `json:"company_id"`
	Status    string  `json:"account_status"`
}
