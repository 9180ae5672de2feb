package models

import "time"

// User roles. Stored as plain strings so they round-trip through JWT claims.
const (
	RoleAdmin    = "ADMIN"
	RoleAgent    = "AGENT"
	RoleCustomer = "CUSTOMER"
)

// User model. Customers carry a registered policy number; agents and admins do not.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:16;not null" json:"role"`
	PhoneNumber    string    `gorm:"size:64" json:"phoneNumber"`
	NationalID     string    `gorm:"size:32" json:"nationalId"`
	PolicyNumber   string    `gorm:"size:32;index" json:"policyNumber"`
}
