// Package store holds the gorm-backed repositories behind the service
// packages' store interfaces.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// Store bundles all repositories over one gorm handle.
type Store struct {
	Claims            *Claims
	Users             *Users
	ClaimTypes        *ClaimTypes
	Documents         *Documents
	Requirements      *Requirements
	ValidationResults *ValidationResults
	FraudResults      *FraudResults
	Audit             *Audit
}

func New(db *gorm.DB) *Store {
	return &Store{
		Claims:            &Claims{db: db},
		Users:             &Users{db: db},
		ClaimTypes:        &ClaimTypes{db: db},
		Documents:         &Documents{db: db},
		Requirements:      &Requirements{db: db},
		ValidationResults: &ValidationResults{db: db},
		FraudResults:      &FraudResults{db: db},
		Audit:             &Audit{db: db},
	}
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
