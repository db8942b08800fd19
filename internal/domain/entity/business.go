package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business represents a merchant account
type Business struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	OwnerName   string         `gorm:"size:255" json:"owner_name"`
	Address     string         `gorm:"type:text" json:"address"`
	City        string         `gorm:"size:255" json:"city"`
	Country     string         `gorm:"size:255;default:Kenya" json:"country"`
	PhoneNumber string         `gorm:"size:20" json:"phone_number"`
	Email       string         `gorm:"size:255" json:"email"`
	Currency    string         `gorm:"size:10;default:KES" json:"currency"`
	TaxNumber   string         `gorm:"size:255" json:"tax_number"`
	Status      string         `gorm:"size:50;default:Active" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Branches []Branch `gorm:"foreignKey:BusinessID" json:"branches,omitempty"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Business) TableName() string {
	return "businesses"
}

// Branch represents one outlet of a business
type Branch struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Address     string         `gorm:"type:text" json:"address"`
	City        string         `gorm:"size:255" json:"city"`
	PhoneNumber string         `gorm:"size:20" json:"phone_number"`
	Email       string         `gorm:"size:255" json:"email"`
	Status      string         `gorm:"size:50;default:Active" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Branch) TableName() string {
	return "branches"
}
