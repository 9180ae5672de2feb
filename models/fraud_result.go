package models

import "time"

// ImageStatus is the fraud classification of an analyzed image.
type ImageStatus string

const (
	ImageGenuine    ImageStatus = "GENUINE"
	ImageSuspicious ImageStatus = "SUSPICIOUS"
	ImageFraud      ImageStatus = "FRAUD"
)

// FraudResult stores the outcome of image fraud analysis for a claim.
// At most one row per claim; re-analysis replaces it.
type FraudResult struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	ClaimID      uint           `gorm:"uniqueIndex;not null" json:"claimId"`
	ImageStatus  ImageStatus    `gorm:"size:16;not null" json:"imageStatus"`
	FraudScore   int            `gorm:"not null" json:"fraudScore"`
	Confidence   int            `gorm:"not null" json:"confidence"`
	Remarks      string         `gorm:"type:text" json:"remarks"`
	Details      map[string]any `gorm:"serializer:json;type:text" json:"details"`
	AnalysisDate time.Time      `gorm:"not null" json:"analysisDate"`
}
