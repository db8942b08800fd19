package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

// Category groups inventory items
type Category struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

// InventoryItem is a sellable stock item. Quantity is never negative; it is
// mutated only through signed adjustments that guard against underflow.
type InventoryItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID     uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Barcode      string         `gorm:"size:255" json:"barcode"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Quantity     int            `gorm:"not null;default:0" json:"quantity"`
	BuyingPrice  int64          `gorm:"not null;default:0" json:"-"` // cents
	SellingPrice int64          `gorm:"not null;default:0" json:"-"` // cents
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type Alias InventoryItem
	return json.Marshal(&struct {
		Alias
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
	}{
		Alias:        Alias(i),
		BuyingPrice:  float64(i.BuyingPrice) / 100,
		SellingPrice: float64(i.SellingPrice) / 100,
	})
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryLog is the audit trail of manual and sale-driven stock movements.
// Best-effort: a failed log write never rolls back the financial outcome.
type InventoryLog struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID        `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID   uuid.UUID        `gorm:"type:uuid;index" json:"branch_id"`
	ItemID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"item_id"`
	Action     enum.StockAction `gorm:"not null" json:"action"`
	Quantity   int              `gorm:"not null" json:"quantity"`
	ActionedBy *uuid.UUID       `gorm:"type:uuid" json:"actioned_by,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	Item InventoryItem `gorm:"foreignKey:ItemID" json:"-"`
}

func (l *InventoryLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}
