package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

type storeLoanRepository struct {
	db *gorm.DB
}

// NewStoreLoanRepository creates a new store loan repository
func NewStoreLoanRepository(db *gorm.DB) domainRepo.StoreLoanRepository {
	return &storeLoanRepository{db: db}
}

func (r *storeLoanRepository) Create(ctx context.Context, loan *entity.StoreLoan) error {
	return conn(ctx, r.db).Create(loan).Error
}

func (r *storeLoanRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.StoreLoan, error) {
	var loan entity.StoreLoan
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Preload("Customer").
		First(&loan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &loan, err
}

func (r *storeLoanRepository) GetOpenByCustomerForUpdate(ctx context.Context, scope entity.Scope, customerID uuid.UUID) (*entity.StoreLoan, error) {
	var loan entity.StoreLoan
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(BusinessScoped(scope)).
		Where("customer_id = ? AND total_amount > amount_paid", customerID).
		First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &loan, err
}

func (r *storeLoanRepository) Update(ctx context.Context, loan *entity.StoreLoan) error {
	return conn(ctx, r.db).Save(loan).Error
}

func (r *storeLoanRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams) ([]entity.StoreLoan, int64, error) {
	var loans []entity.StoreLoan
	var total int64

	query := conn(ctx, r.db).Model(&entity.StoreLoan{}).Scopes(BusinessScoped(scope))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&loans).Error

	return loans, total, err
}

func (r *storeLoanRepository) CreateLog(ctx context.Context, log *entity.StoreLoanLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *storeLoanRepository) ListLogs(ctx context.Context, loanID uuid.UUID) ([]entity.StoreLoanLog, error) {
	var logs []entity.StoreLoanLog
	err := conn(ctx, r.db).
		Where("loan_id = ?", loanID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
