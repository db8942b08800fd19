package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
)

type bnplProviderRepository struct {
	db *gorm.DB
}

// NewBNPLProviderRepository creates a new BNPL provider repository
func NewBNPLProviderRepository(db *gorm.DB) domainRepo.BNPLProviderRepository {
	return &bnplProviderRepository{db: db}
}

func (r *bnplProviderRepository) Create(ctx context.Context, provider *entity.BNPLProvider) error {
	return conn(ctx, r.db).Create(provider).Error
}

func (r *bnplProviderRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLProvider, error) {
	var provider entity.BNPLProvider
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *bnplProviderRepository) GetByName(ctx context.Context, scope entity.Scope, name string) (*entity.BNPLProvider, error) {
	var provider entity.BNPLProvider
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		First(&provider, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *bnplProviderRepository) Update(ctx context.Context, provider *entity.BNPLProvider) error {
	return conn(ctx, r.db).Save(provider).Error
}

func (r *bnplProviderRepository) Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error {
	return conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Delete(&entity.BNPLProvider{}, "id = ?", id).Error
}

func (r *bnplProviderRepository) List(ctx context.Context, scope entity.Scope) ([]entity.BNPLProvider, error) {
	var providers []entity.BNPLProvider
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Order("name ASC").
		Find(&providers).Error
	return providers, err
}

type bnplPurchaseRepository struct {
	db *gorm.DB
}

// NewBNPLPurchaseRepository creates a new BNPL purchase repository
func NewBNPLPurchaseRepository(db *gorm.DB) domainRepo.BNPLPurchaseRepository {
	return &bnplPurchaseRepository{db: db}
}

func (r *bnplPurchaseRepository) Create(ctx context.Context, purchase *entity.BNPLPurchase) error {
	return conn(ctx, r.db).Create(purchase).Error
}

func (r *bnplPurchaseRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error) {
	var purchase entity.BNPLPurchase
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *bnplPurchaseRepository) GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error) {
	var purchase entity.BNPLPurchase
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(Scoped(scope)).
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *bnplPurchaseRepository) GetByOrderID(ctx context.Context, scope entity.Scope, orderID uuid.UUID) (*entity.BNPLPurchase, error) {
	var purchase entity.BNPLPurchase
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&purchase, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *bnplPurchaseRepository) GetWithInstallments(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLPurchase, error) {
	var purchase entity.BNPLPurchase
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Customer").
		Preload("Provider").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC, created_at ASC")
		}).
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *bnplPurchaseRepository) Update(ctx context.Context, purchase *entity.BNPLPurchase) error {
	return conn(ctx, r.db).Save(purchase).Error
}

func (r *bnplPurchaseRepository) List(ctx context.Context, scope entity.Scope, params *domainRepo.BNPLPurchaseFilterParams) ([]entity.BNPLPurchase, int64, error) {
	var purchases []entity.BNPLPurchase
	var total int64

	query := conn(ctx, r.db).Model(&entity.BNPLPurchase{}).Scopes(Scoped(scope))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.ProviderID != nil {
		query = query.Where("provider_id = ?", *params.ProviderID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Provider").
		Order("created_at DESC").
		Find(&purchases).Error

	return purchases, total, err
}

type bnplInstallmentRepository struct {
	db *gorm.DB
}

// NewBNPLInstallmentRepository creates a new BNPL installment repository
func NewBNPLInstallmentRepository(db *gorm.DB) domainRepo.BNPLInstallmentRepository {
	return &bnplInstallmentRepository{db: db}
}

func (r *bnplInstallmentRepository) Create(ctx context.Context, installment *entity.BNPLInstallment) error {
	return conn(ctx, r.db).Create(installment).Error
}

func (r *bnplInstallmentRepository) CreateBatch(ctx context.Context, installments []entity.BNPLInstallment) error {
	return conn(ctx, r.db).Create(&installments).Error
}

func (r *bnplInstallmentRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLInstallment, error) {
	var installment entity.BNPLInstallment
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&installment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &installment, err
}

func (r *bnplInstallmentRepository) GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.BNPLInstallment, error) {
	var installment entity.BNPLInstallment
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(Scoped(scope)).
		First(&installment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &installment, err
}

func (r *bnplInstallmentRepository) Update(ctx context.Context, installment *entity.BNPLInstallment) error {
	return conn(ctx, r.db).Save(installment).Error
}

func (r *bnplInstallmentRepository) ListPendingByPurchase(ctx context.Context, scope entity.Scope, purchaseID uuid.UUID) ([]entity.BNPLInstallment, error) {
	var installments []entity.BNPLInstallment
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(Scoped(scope)).
		Where("purchase_id = ? AND status = ?", purchaseID, enum.InstallmentStatusPending).
		Order("due_date ASC, created_at ASC").
		Find(&installments).Error
	return installments, err
}

func (r *bnplInstallmentRepository) ListByPurchase(ctx context.Context, scope entity.Scope, purchaseID uuid.UUID) ([]entity.BNPLInstallment, error) {
	var installments []entity.BNPLInstallment
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Where("purchase_id = ?", purchaseID).
		Order("due_date ASC, created_at ASC").
		Find(&installments).Error
	return installments, err
}
