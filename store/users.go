package store

import (
	"claimflow/claims"
	"claimflow/models"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func (s *Users) ByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Users) ByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if notFound(err) {
			return nil, claims.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ByPolicyNumber returns nil, nil when no user holds the policy.
func (s *Users) ByPolicyNumber(policyNumber string) (*models.User, error) {
	var u models.User
	err := s.db.Where("policy_number = ?", policyNumber).First(&u).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Users) Create(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *Users) Save(u *models.User) error {
	return s.db.Save(u).Error
}

func (s *Users) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return claims.ErrNotFound
	}
	return nil
}

func (s *Users) List() ([]models.User, error) {
	var out []models.User
	err := s.db.Order("id").Find(&out).Error
	return out, err
}

func (s *Users) ByRole(role string) ([]models.User, error) {
	var out []models.User
	err := s.db.Where("role = ?", role).Order("id").Find(&out).Error
	return out, err
}

func (s *Users) EmailExists(email string) (bool, error) {
	return s.exists("email = ?", email)
}

func (s *Users) PhoneExists(phone string) (bool, error) {
	return s.exists("phone_number = ?", phone)
}

func (s *Users) NationalIDExists(id string) (bool, error) {
	return s.exists("national_id = ?", id)
}

func (s *Users) PolicyExists(policy string) (bool, error) {
	return s.exists("policy_number = ?", policy)
}

func (s *Users) exists(cond string, arg string) (bool, error) {
	if arg == "" {
		return false, nil
	}
	var n int64
	err := s.db.Model(&models.User{}).Where(cond, arg).Count(&n).Error
	return n > 0, err
}
