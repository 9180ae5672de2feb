package models

import "time"

// ValidationStatus summarizes an evidence validation run.
type ValidationStatus string

const (
	ValidationPending      ValidationStatus = "PENDING"
	ValidationComplete     ValidationStatus = "COMPLETE"
	ValidationIncomplete   ValidationStatus = "INCOMPLETE"
	ValidationInconsistent ValidationStatus = "INCONSISTENT"
)

// WorkflowRoute is the downstream processing track a claim is steered into.
type WorkflowRoute string

const (
	RouteFastTrack     WorkflowRoute = "FAST_TRACK"
	RouteStandard      WorkflowRoute = "STANDARD"
	RouteInvestigation WorkflowRoute = "INVESTIGATION"
	RouteResubmission  WorkflowRoute = "RESUBMISSION"
)

// EvidenceValidationResult holds the scores and routing recommendation for
// one claim. At most one row per claim; a re-run replaces the whole record.
// List and map fields are structured in memory and serialized to JSON text
// columns only at the storage boundary.
type EvidenceValidationResult struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	ClaimID             uint             `gorm:"uniqueIndex;not null" json:"claimId"`
	CompletenessScore   int              `gorm:"not null" json:"completenessScore"`
	RelevanceScore      int              `gorm:"not null" json:"relevanceScore"`
	OcrConsistencyScore int              `gorm:"not null" json:"ocrConsistencyScore"`
	OverallScore        int              `gorm:"not null" json:"overallScore"`
	Status              ValidationStatus `gorm:"size:16;not null" json:"validationStatus"`
	MissingDocuments    []string         `gorm:"serializer:json;type:text" json:"missingDocuments"`
	Warnings            []string         `gorm:"serializer:json;type:text" json:"validationWarnings"`
	ExtractedFields     map[string]any   `gorm:"serializer:json;type:text" json:"extractedFields"`
	RecommendedRoute    WorkflowRoute    `gorm:"size:16" json:"recommendedWorkflow"`
	ValidationDate      time.Time        `gorm:"not null" json:"validationDate"`
}
