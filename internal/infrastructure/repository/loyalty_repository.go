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

type loyaltyCardRepository struct {
	db *gorm.DB
}

// NewLoyaltyCardRepository creates a new loyalty card repository
func NewLoyaltyCardRepository(db *gorm.DB) domainRepo.LoyaltyCardRepository {
	return &loyaltyCardRepository{db: db}
}

func (r *loyaltyCardRepository) Create(ctx context.Context, card *entity.LoyaltyCard) error {
	return conn(ctx, r.db).Create(card).Error
}

func (r *loyaltyCardRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.LoyaltyCard, error) {
	var card entity.LoyaltyCard
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *loyaltyCardRepository) GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.LoyaltyCard, error) {
	var card entity.LoyaltyCard
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(BusinessScoped(scope)).
		First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *loyaltyCardRepository) GetByCardNumber(ctx context.Context, scope entity.Scope, cardNumber string) (*entity.LoyaltyCard, error) {
	var card entity.LoyaltyCard
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		First(&card, "card_number = ?", cardNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *loyaltyCardRepository) GetByCardNumberForUpdate(ctx context.Context, scope entity.Scope, cardNumber string) (*entity.LoyaltyCard, error) {
	var card entity.LoyaltyCard
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(BusinessScoped(scope)).
		First(&card, "card_number = ?", cardNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *loyaltyCardRepository) Update(ctx context.Context, card *entity.LoyaltyCard) error {
	return conn(ctx, r.db).Save(card).Error
}

func (r *loyaltyCardRepository) Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error {
	return conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Delete(&entity.LoyaltyCard{}, "id = ?", id).Error
}

func (r *loyaltyCardRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.LoyaltyCard, int64, error) {
	var cards []entity.LoyaltyCard
	var total int64

	query := conn(ctx, r.db).Model(&entity.LoyaltyCard{}).Scopes(BusinessScoped(scope))
	if search != "" {
		query = query.Where("card_number LIKE ? OR customer_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&cards).Error

	return cards, total, err
}

type loyaltyAuditRepository struct {
	db *gorm.DB
}

// NewLoyaltyAuditRepository creates a new loyalty audit repository
func NewLoyaltyAuditRepository(db *gorm.DB) domainRepo.LoyaltyAuditRepository {
	return &loyaltyAuditRepository{db: db}
}

func (r *loyaltyAuditRepository) CreateRecharge(ctx context.Context, recharge *entity.LoyaltyCardRecharge) error {
	return conn(ctx, r.db).Create(recharge).Error
}

func (r *loyaltyAuditRepository) CreateRedeem(ctx context.Context, redeem *entity.LoyaltyCardRedeem) error {
	return conn(ctx, r.db).Create(redeem).Error
}

func (r *loyaltyAuditRepository) ListRecharges(ctx context.Context, scope entity.Scope, cardID uuid.UUID) ([]entity.LoyaltyCardRecharge, error) {
	var recharges []entity.LoyaltyCardRecharge
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&recharges).Error
	return recharges, err
}

func (r *loyaltyAuditRepository) ListRedeems(ctx context.Context, scope entity.Scope, cardID uuid.UUID) ([]entity.LoyaltyCardRedeem, error) {
	var redeems []entity.LoyaltyCardRedeem
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&redeems).Error
	return redeems, err
}

func (r *loyaltyAuditRepository) SumByCard(ctx context.Context, scope entity.Scope, cardID uuid.UUID) (float64, float64, error) {
	var recharged, redeemed float64

	err := conn(ctx, r.db).Model(&entity.LoyaltyCardRecharge{}).
		Scopes(BusinessScoped(scope)).
		Where("card_id = ?", cardID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&recharged).Error
	if err != nil {
		return 0, 0, err
	}

	err = conn(ctx, r.db).Model(&entity.LoyaltyCardRedeem{}).
		Scopes(BusinessScoped(scope)).
		Where("card_id = ?", cardID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&redeemed).Error
	return recharged, redeemed, err
}
