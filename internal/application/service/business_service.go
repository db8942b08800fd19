package service

import (
	"context"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

// BusinessService manages the merchant account and its branches
type BusinessService struct {
	businessRepo repository.BusinessRepository
	branchRepo   repository.BranchRepository
}

// NewBusinessService creates a new business service
func NewBusinessService(businessRepo repository.BusinessRepository, branchRepo repository.BranchRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo, branchRepo: branchRepo}
}

// GetBusiness returns the acting user's business profile
func (s *BusinessService) GetBusiness(ctx context.Context, scope entity.Scope) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, scope.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return business, nil
}

// UpdateBusiness applies profile changes to the acting user's business
func (s *BusinessService) UpdateBusiness(ctx context.Context, scope entity.Scope, updates *entity.Business) (*entity.Business, error) {
	business, err := s.GetBusiness(ctx, scope)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		business.Name = updates.Name
	}
	if updates.OwnerName != "" {
		business.OwnerName = updates.OwnerName
	}
	if updates.Address != "" {
		business.Address = updates.Address
	}
	if updates.City != "" {
		business.City = updates.City
	}
	if updates.Country != "" {
		business.Country = updates.Country
	}
	if updates.PhoneNumber != "" {
		business.PhoneNumber = updates.PhoneNumber
	}
	if updates.Email != "" {
		business.Email = updates.Email
	}
	if updates.Currency != "" {
		business.Currency = updates.Currency
	}
	if updates.TaxNumber != "" {
		business.TaxNumber = updates.TaxNumber
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// CreateBranch opens a new outlet under the acting user's business
func (s *BusinessService) CreateBranch(ctx context.Context, scope entity.Scope, branch *entity.Branch) (*entity.Branch, error) {
	if branch.Name == "" {
		return nil, apperror.NewBadRequestError("branch name is required")
	}

	branch.BusinessID = scope.BusinessID
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// ListBranches returns all outlets of the acting user's business
func (s *BusinessService) ListBranches(ctx context.Context, scope entity.Scope) ([]entity.Branch, error) {
	return s.branchRepo.ListByBusiness(ctx, scope.BusinessID)
}
