package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// LoyaltyCardRepository defines the interface for loyalty card data
// operations. ForUpdate variants lock the row for the rest of the
// transaction; balance mutations must go through them.
type LoyaltyCardRepository interface {
	Create(ctx context.Context, card *entity.LoyaltyCard) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.LoyaltyCard, error)
	GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.LoyaltyCard, error)
	GetByCardNumber(ctx context.Context, scope entity.Scope, cardNumber string) (*entity.LoyaltyCard, error)
	GetByCardNumberForUpdate(ctx context.Context, scope entity.Scope, cardNumber string) (*entity.LoyaltyCard, error)
	Update(ctx context.Context, card *entity.LoyaltyCard) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.LoyaltyCard, int64, error)
}

// LoyaltyAuditRepository defines the interface for the points audit trail.
// Recharge and redeem rows are append-only and mirror every balance change
// 1:1; SumByCard reconciles the cached balance against them.
type LoyaltyAuditRepository interface {
	CreateRecharge(ctx context.Context, recharge *entity.LoyaltyCardRecharge) error
	CreateRedeem(ctx context.Context, redeem *entity.LoyaltyCardRedeem) error
	ListRecharges(ctx context.Context, scope entity.Scope, cardID uuid.UUID) ([]entity.LoyaltyCardRecharge, error)
	ListRedeems(ctx context.Context, scope entity.Scope, cardID uuid.UUID) ([]entity.LoyaltyCardRedeem, error)
	// SumByCard returns total points recharged and redeemed for the card
	SumByCard(ctx context.Context, scope entity.Scope, cardID uuid.UUID) (recharged float64, redeemed float64, err error)
}
