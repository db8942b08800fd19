package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

// BNPLService manages providers and exposes read access to purchases and
// their schedules. Repayments go through the payment allocator.
type BNPLService struct {
	providerRepo    repository.BNPLProviderRepository
	purchaseRepo    repository.BNPLPurchaseRepository
	installmentRepo repository.BNPLInstallmentRepository
}

// NewBNPLService creates a new BNPL service
func NewBNPLService(
	providerRepo repository.BNPLProviderRepository,
	purchaseRepo repository.BNPLPurchaseRepository,
	installmentRepo repository.BNPLInstallmentRepository,
) *BNPLService {
	return &BNPLService{
		providerRepo:    providerRepo,
		purchaseRepo:    purchaseRepo,
		installmentRepo: installmentRepo,
	}
}

// CreateProvider registers a financing provider
func (s *BNPLService) CreateProvider(ctx context.Context, scope entity.Scope, provider *entity.BNPLProvider) (*entity.BNPLProvider, error) {
	if provider.Name == "" {
		return nil, apperror.NewBadRequestError("Provider name is required")
	}
	existing, err := s.providerRepo.GetByName(ctx, scope, provider.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrConflict
	}
	provider.BusinessID = scope.BusinessID
	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListProviders returns the financing providers for the scope
func (s *BNPLService) ListProviders(ctx context.Context, scope entity.Scope) ([]entity.BNPLProvider, error) {
	return s.providerRepo.List(ctx, scope)
}

// GetPurchase returns a purchase with its installment schedule
func (s *BNPLService) GetPurchase(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error) {
	purchase, err := s.purchaseRepo.GetWithInstallments(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("BNPL purchase")
	}
	return purchase, nil
}

// ListPurchases returns purchases for the scope
func (s *BNPLService) ListPurchases(ctx context.Context, scope entity.Scope, params *repository.BNPLPurchaseFilterParams) ([]entity.BNPLPurchase, int64, error) {
	return s.purchaseRepo.List(ctx, scope, params)
}

// ListInstallments returns the schedule of one purchase
func (s *BNPLService) ListInstallments(ctx context.Context, scope entity.Scope, purchaseID uuid.UUID) ([]entity.BNPLInstallment, error) {
	return s.installmentRepo.ListByPurchase(ctx, scope, purchaseID)
}
