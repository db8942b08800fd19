package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) List(ctx context.Context, scope entity.Scope, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := conn(ctx, r.db).Model(&entity.Payment{}).Scopes(Scoped(scope))

	if params.Method != nil {
		query = query.Where("payment_method = ?", *params.Method)
	}

	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}

	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("payment_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) ListByOrder(ctx context.Context, scope entity.Scope, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, scope entity.Scope, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new business ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, record *entity.BusinessLedger) error {
	return conn(ctx, r.db).Create(record).Error
}

func (r *ledgerRepository) List(ctx context.Context, scope entity.Scope, params *domainRepo.LedgerFilterParams) ([]entity.BusinessLedger, int64, error) {
	var records []entity.BusinessLedger
	var total int64

	query := conn(ctx, r.db).Model(&entity.BusinessLedger{}).Scopes(Scoped(scope))

	if params.RecordType != nil {
		query = query.Where("record_type = ?", *params.RecordType)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, created_at DESC").
		Find(&records).Error

	return records, total, err
}

func (r *ledgerRepository) Totals(ctx context.Context, scope entity.Scope, startDate, endDate *time.Time) (int64, int64, error) {
	var result struct {
		Debit  int64
		Credit int64
	}

	query := conn(ctx, r.db).Model(&entity.BusinessLedger{}).Scopes(Scoped(scope))
	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	err := query.
		Select("COALESCE(SUM(debit), 0) AS debit, COALESCE(SUM(credit), 0) AS credit").
		Scan(&result).Error
	return result.Debit, result.Credit, err
}

type mpesaTransactionRepository struct {
	db *gorm.DB
}

// NewMpesaTransactionRepository creates a new M-Pesa transaction repository
func NewMpesaTransactionRepository(db *gorm.DB) domainRepo.MpesaTransactionRepository {
	return &mpesaTransactionRepository{db: db}
}

func (r *mpesaTransactionRepository) Create(ctx context.Context, txn *entity.MpesaTransaction) error {
	return conn(ctx, r.db).Create(txn).Error
}

func (r *mpesaTransactionRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error) {
	var txn entity.MpesaTransaction
	err := conn(ctx, r.db).
		First(&txn, "checkout_request_id = ?", checkoutRequestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *mpesaTransactionRepository) Update(ctx context.Context, txn *entity.MpesaTransaction) error {
	return conn(ctx, r.db).Save(txn).Error
}

func (r *mpesaTransactionRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams) ([]entity.MpesaTransaction, int64, error) {
	var txns []entity.MpesaTransaction
	var total int64

	query := conn(ctx, r.db).Model(&entity.MpesaTransaction{}).Scopes(Scoped(scope))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}
