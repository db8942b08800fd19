package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// StoreLoanRepository defines the interface for in-house credit data
// operations. A customer has at most one open loan; store-credit sales extend
// it and repayments reduce it.
type StoreLoanRepository interface {
	Create(ctx context.Context, loan *entity.StoreLoan) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.StoreLoan, error)
	GetOpenByCustomerForUpdate(ctx context.Context, scope entity.Scope, customerID uuid.UUID) (*entity.StoreLoan, error)
	Update(ctx context.Context, loan *entity.StoreLoan) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams) ([]entity.StoreLoan, int64, error)
	CreateLog(ctx context.Context, log *entity.StoreLoanLog) error
	ListLogs(ctx context.Context, loanID uuid.UUID) ([]entity.StoreLoanLog, error)
}
