package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// LoyaltyService manages points and store credit on loyalty cards. Every
// balance change is mirrored by an audit row; the audit trail is the
// reconciliation source of truth.
type LoyaltyService struct {
	cardRepo  repository.LoyaltyCardRepository
	auditRepo repository.LoyaltyAuditRepository
	loanRepo  repository.StoreLoanRepository
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(
	cardRepo repository.LoyaltyCardRepository,
	auditRepo repository.LoyaltyAuditRepository,
	loanRepo repository.StoreLoanRepository,
) *LoyaltyService {
	return &LoyaltyService{
		cardRepo:  cardRepo,
		auditRepo: auditRepo,
		loanRepo:  loanRepo,
	}
}

// Accrue earns floor(spend/100) points for the card and adds the spend to
// its cumulative total. An empty or unknown card number is a soft no-op so a
// walk-in sale never fails on loyalty.
func (s *LoyaltyService) Accrue(ctx context.Context, scope entity.Scope, cardNumber string, spendCents int64) (float64, error) {
	if cardNumber == "" {
		return 0, nil
	}
	card, err := s.cardRepo.GetByCardNumberForUpdate(ctx, scope, cardNumber)
	if err != nil {
		return 0, err
	}
	if card == nil {
		return 0, nil
	}

	points := math.Floor(float64(spendCents) / 100 / 100)
	card.Points += points
	card.AmountSpend += spendCents
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return 0, err
	}

	if points > 0 {
		recharge := &entity.LoyaltyCardRecharge{
			BusinessID: scope.BusinessID,
			BranchID:   scope.BranchID,
			CardID:     card.ID,
			Amount:     points,
		}
		if err := s.auditRepo.CreateRecharge(ctx, recharge); err != nil {
			return 0, err
		}
	}
	return points, nil
}

// Redeem converts points to store credit, 1 point = 1 currency unit. Fails
// with InsufficientPoints when the card balance cannot cover the redemption.
func (s *LoyaltyService) Redeem(ctx context.Context, scope entity.Scope, cardNumber string, points float64) error {
	if points <= 0 {
		return apperror.NewBadRequestError("Redemption points must be positive")
	}
	card, err := s.cardRepo.GetByCardNumberForUpdate(ctx, scope, cardNumber)
	if err != nil {
		return err
	}
	if card == nil {
		return apperror.NewNotFoundError("Loyalty card")
	}
	if card.Points < points {
		return apperror.NewInsufficientPoints(
			fmt.Sprintf("Card %s has %.2f points, requested %.2f", card.CardNumber, card.Points, points))
	}

	card.Points -= points
	card.AvailableCredit += int64(points * 100)
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return err
	}

	redeem := &entity.LoyaltyCardRedeem{
		BusinessID: scope.BusinessID,
		BranchID:   scope.BranchID,
		CardID:     card.ID,
		Amount:     points,
	}
	return s.auditRepo.CreateRedeem(ctx, redeem)
}

// IssueStoreCredit extends in-house credit to the card's customer for a
// store-credit sale. The open loan is extended when one exists, otherwise a
// new loan is created; every issuance is logged.
func (s *LoyaltyService) IssueStoreCredit(ctx context.Context, scope entity.Scope, cardNumber string, amountCents int64, issuedBy *uuid.UUID) (*entity.StoreLoan, error) {
	if amountCents <= 0 {
		return nil, apperror.NewBadRequestError("Credit amount must be positive")
	}
	card, err := s.cardRepo.GetByCardNumberForUpdate(ctx, scope, cardNumber)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Loyalty card")
	}
	if card.AvailableCredit < amountCents {
		return nil, apperror.NewInsufficientCredit(
			fmt.Sprintf("Card %s has %.2f credit available, requested %.2f",
				card.CardNumber, float64(card.AvailableCredit)/100, float64(amountCents)/100))
	}

	card.AvailableCredit -= amountCents
	card.CreditIssued += amountCents
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.GetOpenByCustomerForUpdate(ctx, scope, card.ID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		loan = &entity.StoreLoan{
			BusinessID:  scope.BusinessID,
			BranchID:    scope.BranchID,
			CustomerID:  card.ID,
			TotalAmount: amountCents,
			IssuedBy:    issuedBy,
		}
		if err := s.loanRepo.Create(ctx, loan); err != nil {
			return nil, err
		}
	} else {
		loan.TotalAmount += amountCents
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return nil, err
		}
	}

	logEntry := &entity.StoreLoanLog{
		LoanID:      loan.ID,
		Action:      "issued",
		Amount:      amountCents,
		PerformedBy: issuedBy,
	}
	if err := s.loanRepo.CreateLog(ctx, logEntry); err != nil {
		return nil, err
	}
	return loan, nil
}

// RepayStoreLoan applies a repayment to the customer's open loan and
// restores available credit on the card
func (s *LoyaltyService) RepayStoreLoan(ctx context.Context, scope entity.Scope, loanID uuid.UUID, amountCents int64, performedBy *uuid.UUID) (*entity.StoreLoan, error) {
	if amountCents <= 0 {
		return nil, apperror.NewBadRequestError("Repayment amount must be positive")
	}
	loan, err := s.loanRepo.GetByID(ctx, scope, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, apperror.NewNotFoundError("Store loan")
	}

	card, err := s.cardRepo.GetByIDForUpdate(ctx, scope, loan.CustomerID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Loyalty card")
	}

	loan.AmountPaid += amountCents
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	card.AvailableCredit += amountCents
	card.CreditIssued -= amountCents
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	logEntry := &entity.StoreLoanLog{
		LoanID:      loan.ID,
		Action:      "repaid",
		Amount:      amountCents,
		PerformedBy: performedBy,
	}
	if err := s.loanRepo.CreateLog(ctx, logEntry); err != nil {
		return nil, err
	}
	return loan, nil
}

// CreateCardInput describes a new loyalty card
type CreateCardInput struct {
	CardNumber    string
	CustomerName  string
	PhoneNumber   string
	CustomerEmail string
	Address       string
}

// CreateCard registers a loyalty card
func (s *LoyaltyService) CreateCard(ctx context.Context, scope entity.Scope, input *CreateCardInput) (*entity.LoyaltyCard, error) {
	if input.CardNumber == "" || input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Card number and customer name are required")
	}
	existing, err := s.cardRepo.GetByCardNumber(ctx, scope, input.CardNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrConflict
	}

	card := &entity.LoyaltyCard{
		BusinessID:    scope.BusinessID,
		BranchID:      scope.BranchID,
		CardNumber:    input.CardNumber,
		CustomerName:  input.CustomerName,
		PhoneNumber:   input.PhoneNumber,
		CustomerEmail: input.CustomerEmail,
		Address:       input.Address,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// GetCard returns one loyalty card
func (s *LoyaltyService) GetCard(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.LoyaltyCard, error) {
	card, err := s.cardRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Loyalty card")
	}
	return card, nil
}

// ListCards returns loyalty cards for the scope
func (s *LoyaltyService) ListCards(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.LoyaltyCard, int64, error) {
	return s.cardRepo.List(ctx, scope, params, search)
}

// Reconcile verifies the card's cached points balance against its audit
// rows. An imbalance is an InconsistentState error.
func (s *LoyaltyService) Reconcile(ctx context.Context, scope entity.Scope, cardID uuid.UUID) error {
	card, err := s.cardRepo.GetByID(ctx, scope, cardID)
	if err != nil {
		return err
	}
	if card == nil {
		return apperror.NewNotFoundError("Loyalty card")
	}
	recharged, redeemed, err := s.auditRepo.SumByCard(ctx, scope, cardID)
	if err != nil {
		return err
	}
	if math.Abs(card.Points-(recharged-redeemed)) > 1e-9 {
		return apperror.NewInconsistentState(
			fmt.Sprintf("Card %s points %.2f do not match audit sum %.2f", card.CardNumber, card.Points, recharged-redeemed))
	}
	return nil
}
