package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// BNPLProviderRepository defines the interface for provider data operations
type BNPLProviderRepository interface {
	Create(ctx context.Context, provider *entity.BNPLProvider) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLProvider, error)
	GetByName(ctx context.Context, scope entity.Scope, name string) (*entity.BNPLProvider, error)
	Update(ctx context.Context, provider *entity.BNPLProvider) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope) ([]entity.BNPLProvider, error)
}

// BNPLPurchaseRepository defines the interface for BNPL purchase data
// operations
type BNPLPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.BNPLPurchase) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error)
	GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error)
	GetByOrderID(ctx context.Context, scope entity.Scope, orderID uuid.UUID) (*entity.BNPLPurchase, error)
	GetWithInstallments(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error)
	Update(ctx context.Context, purchase *entity.BNPLPurchase) error
	List(ctx context.Context, scope entity.Scope, params *BNPLPurchaseFilterParams) ([]entity.BNPLPurchase, int64, error)
}

// BNPLPurchaseFilterParams contains filtering parameters for purchase queries
type BNPLPurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.BNPLPurchaseStatus
	CustomerID *uuid.UUID
	ProviderID *uuid.UUID
}

// BNPLInstallmentRepository defines the interface for installment data
// operations
type BNPLInstallmentRepository interface {
	Create(ctx context.Context, installment *entity.BNPLInstallment) error
	CreateBatch(ctx context.Context, installments []entity.BNPLInstallment) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLInstallment, error)
	GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLInstallment, error)
	Update(ctx context.Context, installment *entity.BNPLInstallment) error
	// ListPendingByPurchase returns unpaid installments ordered by due date
	// ascending, locked for the rest of the transaction.
	ListPendingByPurchase(ctx context.Context, scope entity.Scope, purchaseID uuid.UUID) ([]entity.BNPLInstallment, error)
	ListByPurchase(ctx context.Context, scope entity.Scope, purchaseID uuid.UUID) ([]entity.BNPLInstallment, error)
}
