package store

import (
	"claimflow/claims"
	"claimflow/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClaimTypes struct {
	db *gorm.DB
}

func (s *ClaimTypes) ByID(id uint) (*models.ClaimType, error) {
	var ct models.ClaimType
	if err := s.db.First(&ct, id).Error; err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func (s *ClaimTypes) List() ([]models.ClaimType, error) {
	var out []models.ClaimType
	err := s.db.Order("id").Find(&out).Error
	return out, err
}

func (s *ClaimTypes) Create(ct *models.ClaimType) error {
	return s.db.Create(ct).Error
}

func (s *ClaimTypes) Save(ct *models.ClaimType) error {
	return s.db.Save(ct).Error
}

func (s *ClaimTypes) Delete(id uint) error {
	res := s.db.Delete(&models.ClaimType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return claims.ErrNotFound
	}
	return nil
}

type Documents struct {
	db *gorm.DB
}

func (s *Documents) Create(d *models.ClaimDocument) error {
	return s.db.Create(d).Error
}

func (s *Documents) ByClaim(claimID uint) ([]models.ClaimDocument, error) {
	var out []models.ClaimDocument
	err := s.db.Where("claim_id = ?", claimID).Order("id").Find(&out).Error
	return out, err
}

func (s *Documents) ByStorePath(storePath string) (*models.ClaimDocument, error) {
	var d models.ClaimDocument
	if err := s.db.Where("store_path = ?", storePath).First(&d).Error; err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *Documents) ByID(id uint) (*models.ClaimDocument, error) {
	var d models.ClaimDocument
	if err := s.db.First(&d, id).Error; err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

type Requirements struct {
	db *gorm.DB
}

func (s *Requirements) ByClaimType(claimTypeID uint) ([]models.DocumentRequirement, error) {
	var out []models.DocumentRequirement
	err := s.db.Where("claim_type_id = ?", claimTypeID).Order("id").Find(&out).Error
	return out, err
}

func (s *Requirements) MandatoryByClaimType(claimTypeID uint) ([]models.DocumentRequirement, error) {
	var out []models.DocumentRequirement
	err := s.db.Where("claim_type_id = ? AND mandatory = ?", claimTypeID, true).
		Order("id").Find(&out).Error
	return out, err
}

type ValidationResults struct {
	db *gorm.DB
}

// Upsert keys on the claim_id unique index so revalidation rewrites the
// single stored row.
func (s *ValidationResults) Upsert(r *models.EvidenceValidationResult) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "claim_id"}},
		UpdateAll: true,
	}).Create(r).Error
}

func (s *ValidationResults) ByClaim(claimID uint) (*models.EvidenceValidationResult, error) {
	var r models.EvidenceValidationResult
	err := s.db.Where("claim_id = ?", claimID).First(&r).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

type FraudResults struct {
	db *gorm.DB
}

// Replace removes any earlier verdict for the claim before inserting the
// new one.
func (s *FraudResults) Replace(r *models.FraudResult) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("claim_id = ?", r.ClaimID).Delete(&models.FraudResult{}).Error; err != nil {
			return err
		}
		return tx.Create(r).Error
	})
}

func (s *FraudResults) ByClaim(claimID uint) (*models.FraudResult, error) {
	var r models.FraudResult
	if err := s.db.Where("claim_id = ?", claimID).First(&r).Error; err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *FraudResults) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.FraudResult{}).Count(&n).Error
	return n, err
}

func (s *FraudResults) CountByStatus(status models.ImageStatus) (int64, error) {
	var n int64
	err := s.db.Model(&models.FraudResult{}).Where("image_status = ?", status).Count(&n).Error
	return n, err
}

type Audit struct {
	db *gorm.DB
}

func (s *Audit) Append(entry *models.AuditLog) error {
	return s.db.Create(entry).Error
}

func (s *Audit) ByClaim(claimID uint) ([]models.AuditLog, error) {
	var out []models.AuditLog
	err := s.db.Where("claim_id = ?", claimID).Order("id").Find(&out).Error
	return out, err
}
