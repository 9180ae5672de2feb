package models

import "time"

// ClaimType is reference data seeded at startup (e.g. "Auto Insurance").
type ClaimType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
}
