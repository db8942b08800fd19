package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyCard is the customer identity key for points, store credit and BNPL.
// The cached Points balance must always equal the sum of the card's recharge
// rows minus its redeem rows; the audit trail is the reconciliation source of
// truth.
type LoyaltyCard struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID        uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	CardNumber      string         `gorm:"size:255;uniqueIndex;not null" json:"card_number"`
	CustomerName    string         `gorm:"size:255;not null" json:"customer_name"`
	PhoneNumber     string         `gorm:"size:255" json:"phone_number"`
	CustomerEmail   string         `gorm:"size:255" json:"customer_email"`
	AmountSpend     int64          `gorm:"default:0" json:"-"` // cents
	Points          float64        `gorm:"default:0" json:"points"`
	Address         string         `gorm:"size:255" json:"address"`
	CreditLimit     int64          `gorm:"default:10000000" json:"-"` // cents
	AvailableCredit int64          `gorm:"default:10000000" json:"-"` // cents
	CreditIssued    int64          `gorm:"default:0" json:"-"`        // cents
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (c LoyaltyCard) MarshalJSON() ([]byte, error) {
	type Alias LoyaltyCard
	return json.Marshal(&struct {
		Alias
		AmountSpend     float64 `json:"amount_spend"`
		CreditLimit     float64 `json:"credit_limit"`
		AvailableCredit float64 `json:"available_credit"`
		CreditIssued    float64 `json:"credit_issued"`
	}{
		Alias:           Alias(c),
		AmountSpend:     float64(c.AmountSpend) / 100,
		CreditLimit:     float64(c.CreditLimit) / 100,
		AvailableCredit: float64(c.AvailableCredit) / 100,
		CreditIssued:    float64(c.CreditIssued) / 100,
	})
}

func (c *LoyaltyCard) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (LoyaltyCard) TableName() string {
	return "loyalty_cards"
}

// LoyaltyCardRecharge is one points accrual, mirrored 1:1 with the balance
// change it caused. Amount is in points.
type LoyaltyCardRecharge struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID   uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	Amount     float64   `gorm:"default:0" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Card LoyaltyCard `gorm:"foreignKey:CardID" json:"-"`
}

func (r *LoyaltyCardRecharge) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (LoyaltyCardRecharge) TableName() string {
	return "loyalty_card_recharges"
}

// LoyaltyCardRedeem is one points redemption. Amount is in points.
type LoyaltyCardRedeem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID   uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	Amount     float64   `gorm:"default:0" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Card LoyaltyCard `gorm:"foreignKey:CardID" json:"-"`
}

func (r *LoyaltyCardRedeem) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (LoyaltyCardRedeem) TableName() string {
	return "loyalty_card_redeems"
}
