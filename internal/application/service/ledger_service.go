package service

import (
	"context"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

// LedgerService appends business ledger records. Append-only: nothing here
// mutates an existing row.
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
	clock      Clock
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository, clock Clock) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, clock: clock}
}

// RecordInput describes one ledger append
type RecordInput struct {
	RecordType  enum.RecordType
	Amount      int64 // cents, must be positive
	Date        *time.Time
	Reason      string
	Description string
	Reference   string
}

// Record appends exactly one ledger row with debit XOR credit set. Zero or
// negative amounts are rejected, never clamped.
func (s *LedgerService) Record(ctx context.Context, scope entity.Scope, input *RecordInput) (*entity.BusinessLedger, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Ledger amount must be positive")
	}

	date := s.clock.Now()
	if input.Date != nil {
		date = *input.Date
	}

	record := &entity.BusinessLedger{
		BusinessID:  scope.BusinessID,
		BranchID:    scope.BranchID,
		RecordType:  input.RecordType,
		Date:        date,
		Reason:      input.Reason,
		Description: input.Description,
		Reference:   input.Reference,
	}
	switch input.RecordType {
	case enum.RecordTypeDebit:
		record.Debit = input.Amount
	case enum.RecordTypeCredit:
		record.Credit = input.Amount
	default:
		return nil, apperror.NewBadRequestError("Unknown ledger record type")
	}

	if err := s.ledgerRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns ledger rows for the scope
func (s *LedgerService) List(ctx context.Context, scope entity.Scope, params *repository.LedgerFilterParams) ([]entity.BusinessLedger, int64, error) {
	return s.ledgerRepo.List(ctx, scope, params)
}

// Totals returns the summed debits and credits for the scope
func (s *LedgerService) Totals(ctx context.Context, scope entity.Scope, startDate, endDate *time.Time) (int64, int64, error) {
	return s.ledgerRepo.Totals(ctx, scope, startDate, endDate)
}
