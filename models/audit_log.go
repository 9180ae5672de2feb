package models

import "time"

// AuditLog records a state-changing action against a claim. Append-only;
// rows are removed only as part of the claim delete cascade.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	ClaimID   uint      `gorm:"index;not null" json:"claimId"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Action    string    `gorm:"size:255;not null" json:"action"`
}
