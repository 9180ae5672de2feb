package models

import "time"

// ClaimDocument is an uploaded piece of evidence attached to a claim.
// Immutable after upload; removed only by the claim delete cascade.
type ClaimDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ClaimID      uint      `gorm:"index;not null" json:"claimId"`
	DocumentName string    `gorm:"size:255;not null" json:"documentName"` // original filename shown to users
	StorePath    string    `gorm:"size:512;not null" json:"filePath"`     // stored filename under the upload base dir
	ContentType  string    `gorm:"size:128" json:"contentType"`
}
