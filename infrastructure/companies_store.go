package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jobboard/domain"
)

// CompanyStore reads companies. Companies are never written here.
type CompanyStore struct {
	db *gorm.DB
}

func NewCompanyStore(db *gorm.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) FindAll(ctx context.Context) ([]domain.Company, error) {
	companies := []domain.Company{}
	if err := s.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Get returns the company and its jobs ordered by id.
func (s *CompanyStore) Get(ctx context.Context, handle string) (*domain.Company, error) {
	var company domain.Company
	err := s.db.WithContext(ctx).
		Preload("Jobs", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("handle = ?", handle).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("No company: %s", handle)
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}

	// Jobs nested under their company do not repeat the handle.
	for i := range company.Jobs {
		company.Jobs[i].CompanyHandle = ""
	}
	return &company, nil
}
