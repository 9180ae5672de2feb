package models

import "time"

// ClaimStatus is the claim lifecycle state. SUBMITTED is initial,
// APPROVED and REJECTED are terminal.
type ClaimStatus string

const (
	StatusSubmitted ClaimStatus = "SUBMITTED"
	StatusInReview  ClaimStatus = "IN_REVIEW"
	StatusApproved  ClaimStatus = "APPROVED"
	StatusRejected  ClaimStatus = "REJECTED"
)

// Claim represents a customer's payout request tied to a policy and claim type.
type Claim struct {
	ID                  uint        `gorm:"primaryKey" json:"id"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	CustomerID          uint        `gorm:"index;not null" json:"customerId"`
	Customer            User        `gorm:"foreignKey:CustomerID" json:"customer"`
	ClaimTypeID         uint        `gorm:"index;not null" json:"claimTypeId"`
	ClaimType           ClaimType   `gorm:"foreignKey:ClaimTypeID" json:"claimType"`
	AssignedAgentID     *uint       `gorm:"index" json:"assignedAgentId"`
	AssignedAgent       *User       `gorm:"foreignKey:AssignedAgentID" json:"assignedAgent,omitempty"`
	Amount              float64     `gorm:"not null" json:"amount"`
	Description         string      `gorm:"type:text" json:"description"`
	Status              ClaimStatus `gorm:"size:16;not null" json:"status"`
	PolicyNumber        string      `gorm:"size:32" json:"policyNumber"`
	SubmissionDate      time.Time   `gorm:"not null" json:"submissionDate"`
	AgentResponse       string      `gorm:"type:text" json:"agentResponse"`
	DescriptionVerified bool        `gorm:"not null;default:false" json:"descriptionVerified"`
}
