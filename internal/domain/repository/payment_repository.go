package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only: there is no Update or Delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, scope entity.Scope, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListByOrder(ctx context.Context, scope entity.Scope, orderID uuid.UUID) ([]entity.Payment, error)
	ListByInvoice(ctx context.Context, scope entity.Scope, invoiceID uuid.UUID) ([]entity.Payment, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Method     *enum.PaymentMethod
	Direction  *enum.PaymentDirection
	StartDate  *time.Time
	EndDate    *time.Time
}

// LedgerRepository defines the interface for business ledger rows. The ledger
// is append-only: rows are created, listed and summed, never changed.
type LedgerRepository interface {
	Create(ctx context.Context, record *entity.BusinessLedger) error
	List(ctx context.Context, scope entity.Scope, params *LedgerFilterParams) ([]entity.BusinessLedger, int64, error)
	// Totals returns the sum of debits and credits for the scope within
	// the optional date range.
	Totals(ctx context.Context, scope entity.Scope, startDate, endDate *time.Time) (debit int64, credit int64, err error)
}

// LedgerFilterParams contains filtering parameters for ledger queries
type LedgerFilterParams struct {
	Pagination *pagination.PaginationParams
	RecordType *enum.RecordType
	StartDate  *time.Time
	EndDate    *time.Time
}

// MpesaTransactionRepository defines the interface for STK push lifecycle rows
type MpesaTransactionRepository interface {
	Create(ctx context.Context, txn *entity.MpesaTransaction) error
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error)
	Update(ctx context.Context, txn *entity.MpesaTransaction) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams) ([]entity.MpesaTransaction, int64, error)
}
