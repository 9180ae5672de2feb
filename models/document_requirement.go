package models

import "time"

// DocumentRequirement maps a claim type to an evidence category the
// customer is expected to provide. Static reference data; catalog order
// is insertion (id) order.
type DocumentRequirement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ClaimTypeID uint      `gorm:"index;not null" json:"claimTypeId"`
	Category    string    `gorm:"size:64;not null" json:"documentType"` // e.g. DAMAGE_PHOTO, HOSPITAL_BILL
	DisplayName string    `gorm:"size:255;not null" json:"displayName"`
	Mandatory   bool      `gorm:"not null;default:true" json:"mandatory"`
	Description string    `gorm:"type:text" json:"description"`
}
