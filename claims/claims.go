// Package claims owns the claim lifecycle: creation, agent assignment,
// decisions, description verification, deletion and queries. Every
// state-changing operation appends an audit entry attributed to the
// acting user.
package claims

import (
	"errors"
	"fmt"
	"time"

	"claimflow/models"
)

var (
	// ErrNotFound reports a missing claim, agent or claim type.
	ErrNotFound = errors.New("not found")
	// ErrPolicyMismatch reports a policy number that belongs to another
	// customer or differs from the customer's registered one.
	ErrPolicyMismatch = errors.New("policy number mismatch")
	// ErrInvalidStatus reports a decision status outside {APPROVED, REJECTED}.
	ErrInvalidStatus = errors.New("invalid decision status")
)

// ClaimStore is the persistence surface the lifecycle manager needs.
type ClaimStore interface {
	ByID(id uint) (*models.Claim, error)
	Create(c *models.Claim) error
	Save(c *models.Claim) error
	// DeleteCascade removes audit entries, then documents, then the claim,
	// atomically.
	DeleteCascade(id uint) error
	List(q Query) ([]models.Claim, int64, error)
	ByCustomer(customerID uint) ([]models.Claim, error)
	ByAgent(agentID uint) ([]models.Claim, error)
}

type UserStore interface {
	ByID(id uint) (*models.User, error)
	ByPolicyNumber(policyNumber string) (*models.User, error)
}

type ClaimTypeStore interface {
	ByID(id uint) (*models.ClaimType, error)
}

// AuditStore is the append-only ledger of claim actions.
type AuditStore interface {
	Append(entry *models.AuditLog) error
	ByClaim(claimID uint) ([]models.AuditLog, error)
}

// Query describes a filtered, paged, sorted claim listing.
type Query struct {
	Status    string
	ClaimType string // claim type name, case-insensitive
	MinAmount *float64
	MaxAmount *float64
	Page      int // zero-based
	Size      int
	SortBy    string // claim column name; defaults to submission_date
	SortDesc  bool
}

// CreateRequest carries the customer-supplied fields of a new claim.
type CreateRequest struct {
	ClaimTypeID  uint    `json:"claimTypeId"`
	Description  string  `json:"description"`
	PolicyNumber string  `json:"policyNumber"`
	Amount       float64 `json:"amount"`
}

type Service struct {
	claims ClaimStore
	users  UserStore
	types  ClaimTypeStore
	audit  AuditStore
}

func NewService(claims ClaimStore, users UserStore, types ClaimTypeStore, audit AuditStore) *Service {
	return &Service{claims: claims, users: users, types: types, audit: audit}
}

// Create validates the policy number against the customer's registration,
// persists the claim in SUBMITTED state and logs CLAIM_SUBMITTED.
func (s *Service) Create(req CreateRequest, customer *models.User) (*models.Claim, error) {
	if req.PolicyNumber != "" {
		owner, err := s.users.ByPolicyNumber(req.PolicyNumber)
		if err == nil && owner != nil && owner.ID != customer.ID {
			return nil, fmt.Errorf("%w: policy number is registered to another customer", ErrPolicyMismatch)
		}
		if customer.PolicyNumber != "" && req.PolicyNumber != customer.PolicyNumber {
			return nil, fmt.Errorf("%w: does not match your registered policy number %s", ErrPolicyMismatch, customer.PolicyNumber)
		}
	}

	ct, err := s.types.ByID(req.ClaimTypeID)
	if err != nil || ct == nil {
		return nil, fmt.Errorf("%w: claim type %d", ErrNotFound, req.ClaimTypeID)
	}

	claim := &models.Claim{
		CustomerID:     customer.ID,
		ClaimTypeID:    ct.ID,
		Description:    req.Description,
		PolicyNumber:   req.PolicyNumber,
		Amount:         req.Amount,
		Status:         models.StatusSubmitted,
		SubmissionDate: time.Now(),
	}
	if err := s.claims.Create(claim); err != nil {
		return nil, err
	}
	if err := s.logAction(claim.ID, customer.ID, "CLAIM_SUBMITTED"); err != nil {
		return nil, err
	}
	return claim, nil
}

// AssignAgent sets the assigned agent and forces the claim into
// IN_REVIEW, whatever its prior status. Re-assignment is allowed.
func (s *Service) AssignAgent(claimID, agentID uint, actor *models.User) (*models.Claim, error) {
	claim, err := s.get(claimID)
	if err != nil {
		return nil, err
	}
	agent, err := s.users.ByID(agentID)
	if err != nil || agent == nil {
		return nil, fmt.Errorf("%w: agent %d", ErrNotFound, agentID)
	}
	aid := agent.ID
	claim.AssignedAgentID = &aid
	claim.Status = models.StatusInReview
	if err := s.claims.Save(claim); err != nil {
		return nil, err
	}
	if err := s.logAction(claim.ID, actor.ID, "ASSIGNED_TO_"+agent.Name); err != nil {
		return nil, err
	}
	return claim, nil
}

// SetDecision stores the agent's verdict and response text. No
// precondition on the current status; the last writer wins.
func (s *Service) SetDecision(claimID uint, status models.ClaimStatus, response string, actor *models.User) (*models.Claim, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	claim, err := s.get(claimID)
	if err != nil {
		return nil, err
	}
	claim.Status = status
	claim.AgentResponse = response
	if err := s.claims.Save(claim); err != nil {
		return nil, err
	}
	if err := s.logAction(claim.ID, actor.ID, fmt.Sprintf("STATUS_CHANGED_TO_%s_WITH_RESPONSE", status)); err != nil {
		return nil, err
	}
	return claim, nil
}

// VerifyDescription marks the claim description as verified. Calling it
// on an already-verified claim is a no-op: no write, no audit entry.
func (s *Service) VerifyDescription(claimID uint, actor *models.User) (*models.Claim, error) {
	claim, err := s.get(claimID)
	if err != nil {
		return nil, err
	}
	if claim.DescriptionVerified {
		return claim, nil
	}
	claim.DescriptionVerified = true
	if err := s.claims.Save(claim); err != nil {
		return nil, err
	}
	if err := s.logAction(claim.ID, actor.ID, "DESCRIPTION_VERIFIED"); err != nil {
		return nil, err
	}
	return claim, nil
}

// Delete removes the claim's audit entries, documents and finally the
// claim itself as one atomic cascade.
func (s *Service) Delete(claimID uint) error {
	if _, err := s.get(claimID); err != nil {
		return err
	}
	return s.claims.DeleteCascade(claimID)
}

func (s *Service) Get(claimID uint) (*models.Claim, error) {
	return s.get(claimID)
}

func (s *Service) List(q Query) ([]models.Claim, int64, error) {
	if q.Size <= 0 {
		q.Size = 10
	}
	if q.Page < 0 {
		q.Page = 0
	}
	return s.claims.List(q)
}

func (s *Service) ListByCustomer(customerID uint) ([]models.Claim, error) {
	return s.claims.ByCustomer(customerID)
}

func (s *Service) ListByAgent(agentID uint) ([]models.Claim, error) {
	return s.claims.ByAgent(agentID)
}

// History returns the audit trail for a claim in insertion order.
func (s *Service) History(claimID uint) ([]models.AuditLog, error) {
	if _, err := s.get(claimID); err != nil {
		return nil, err
	}
	return s.audit.ByClaim(claimID)
}

func (s *Service) get(claimID uint) (*models.Claim, error) {
	claim, err := s.claims.ByID(claimID)
	if err != nil || claim == nil {
		return nil, fmt.Errorf("%w: claim %d", ErrNotFound, claimID)
	}
	return claim, nil
}

// logAction appends to the ledger. A failed append is a storage failure
// and surfaces to the caller; the preceding claim write has already
// committed at that point.
func (s *Service) logAction(claimID, userID uint, action string) error {
	return s.audit.Append(&models.AuditLog{ClaimID: claimID, UserID: userID, Action: action})
}
