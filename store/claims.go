package store

import (
	"strings"

	"claimflow/claims"
	"claimflow/models"

	"gorm.io/gorm"
)

type Claims struct {
	db *gorm.DB
}

// sortableColumns maps every claim field, by column name or JSON name,
// to its column. Anything else falls back to submission_date.
var sortableColumns = map[string]string{
	"id":                   "id",
	"amount":               "amount",
	"status":               "status",
	"description":          "description",
	"submission_date":      "submission_date",
	"submissionDate":       "submission_date",
	"created_at":           "created_at",
	"createdAt":            "created_at",
	"updated_at":           "updated_at",
	"updatedAt":            "updated_at",
	"customer_id":          "customer_id",
	"customerId":           "customer_id",
	"claim_type_id":        "claim_type_id",
	"claimTypeId":          "claim_type_id",
	"assigned_agent_id":    "assigned_agent_id",
	"assignedAgentId":      "assigned_agent_id",
	"policy_number":        "policy_number",
	"policyNumber":         "policy_number",
	"agent_response":       "agent_response",
	"agentResponse":        "agent_response",
	"description_verified": "description_verified",
	"descriptionVerified":  "description_verified",
}

func (s *Claims) ByID(id uint) (*models.Claim, error) {
	var c models.Claim
	err := s.db.Preload("Customer").Preload("ClaimType").Preload("AssignedAgent").
		First(&c, id).Error
	if err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Claims) Create(c *models.Claim) error {
	return s.db.Create(c).Error
}

func (s *Claims) Save(c *models.Claim) error {
	return s.db.Save(c).Error
}

// DeleteCascade removes the claim and everything hanging off it in one
// transaction: audit trail, documents, fraud and validation results.
func (s *Claims) DeleteCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("claim_id = ?", id).Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("claim_id = ?", id).Delete(&models.ClaimDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("claim_id = ?", id).Delete(&models.FraudResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("claim_id = ?", id).Delete(&models.EvidenceValidationResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Claim{}, id).Error
	})
}

func orderClause(sortBy string, desc bool) string {
	col, ok := sortableColumns[sortBy]
	if !ok {
		col = "submission_date"
	}
	order := "claims." + col
	if desc {
		order += " DESC"
	}
	return order
}

func (s *Claims) List(q claims.Query) ([]models.Claim, int64, error) {
	tx := s.db.Model(&models.Claim{})
	if q.Status != "" {
		tx = tx.Where("claims.status = ?", strings.ToUpper(q.Status))
	}
	if q.ClaimType != "" {
		tx = tx.Joins("JOIN claim_types ON claim_types.id = claims.claim_type_id").
			Where("LOWER(claim_types.name) = LOWER(?)", q.ClaimType)
	}
	if q.MinAmount != nil {
		tx = tx.Where("claims.amount >= ?", *q.MinAmount)
	}
	if q.MaxAmount != nil {
		tx = tx.Where("claims.amount <= ?", *q.MaxAmount)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(q.SortBy, q.SortDesc)

	size := q.Size
	if size <= 0 {
		size = 10
	}
	var out []models.Claim
	err := tx.Preload("Customer").Preload("ClaimType").Preload("AssignedAgent").
		Order(order).Offset(q.Page * size).Limit(size).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Claims) ByCustomer(customerID uint) ([]models.Claim, error) {
	var out []models.Claim
	err := s.db.Preload("ClaimType").Preload("AssignedAgent").
		Where("customer_id = ?", customerID).
		Order("submission_date DESC").Find(&out).Error
	return out, err
}

func (s *Claims) ByAgent(agentID uint) ([]models.Claim, error) {
	var out []models.Claim
	err := s.db.Preload("Customer").Preload("ClaimType").
		Where("assigned_agent_id = ?", agentID).
		Order("submission_date DESC").Find(&out).Error
	return out, err
}
