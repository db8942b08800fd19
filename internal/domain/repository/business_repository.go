package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
	List(ctx context.Context) ([]entity.Business, error)
}

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
}
