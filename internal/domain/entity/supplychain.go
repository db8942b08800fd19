package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a vendor the business purchases stock from
type Supplier struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID     uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"size:255" json:"email"`
	PhoneNumber  string         `gorm:"size:255" json:"phone_number"`
	Address      string         `gorm:"size:255" json:"address"`
	Status       string         `gorm:"size:50;default:Active" json:"status"`
	LeadTimeDays int            `gorm:"default:0" json:"lead_time_days"`
	PaymentTerms string         `gorm:"size:255" json:"payment_terms"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Supplier) TableName() string {
	return "suppliers"
}

// ProductSupplier links an inventory item to a supplier with a negotiated cost
type ProductSupplier struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID          uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	ProductID           uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	SupplierID          uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	SupplierProductCode string    `gorm:"size:255" json:"supplier_product_code"`
	CostPrice           int64     `gorm:"not null" json:"-"` // cents
	MOQ                 int       `gorm:"default:1" json:"moq"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Product  InventoryItem `gorm:"foreignKey:ProductID" json:"-"`
	Supplier Supplier      `gorm:"foreignKey:SupplierID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (ps ProductSupplier) MarshalJSON() ([]byte, error) {
	type Alias ProductSupplier
	return json.Marshal(&struct {
		Alias
		CostPrice float64 `json:"cost_price"`
	}{
		Alias:     Alias(ps),
		CostPrice: float64(ps.CostPrice) / 100,
	})
}

func (ps *ProductSupplier) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return nil
}

func (ProductSupplier) TableName() string {
	return "product_suppliers"
}

// SupplyRequest is a branch's ask for stock, later attached to a purchase
// order
type SupplyRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID    uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int        `gorm:"default:1" json:"quantity"`
	RequestedBy *uuid.UUID `gorm:"type:uuid" json:"requested_by,omitempty"`
	Status      string     `gorm:"size:50;default:Pending" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Product InventoryItem `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (sr *SupplyRequest) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	return nil
}

func (SupplyRequest) TableName() string {
	return "supply_requests"
}

// PurchaseOrder is an order placed with a supplier
type PurchaseOrder struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID             uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	SupplierID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"supplier_id"`
	OrderDate            time.Time  `gorm:"type:date" json:"order_date"`
	ExpectedDeliveryDate *time.Time `gorm:"type:date" json:"expected_delivery_date,omitempty"`
	Status               string     `gorm:"size:50;default:Pending" json:"status"`
	TotalAmount          int64      `gorm:"default:0" json:"-"` // cents
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Supplier Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (po PurchaseOrder) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrder
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(po),
		TotalAmount: float64(po.TotalAmount) / 100,
	})
}

func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one line of a purchase order. ReceivedQuantity tracks
// goods receipts, which restock inventory through the stock adjuster.
type PurchaseOrderItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID       uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	PurchaseOrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity         int       `gorm:"default:1" json:"quantity"`
	ReceivedQuantity int       `gorm:"default:0" json:"received_quantity"`
	UnitCost         int64     `gorm:"not null" json:"-"` // cents
	ItemTotal        int64     `gorm:"not null" json:"-"` // cents
	Status           string    `gorm:"size:50;default:Pending" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	Product       InventoryItem `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (poi PurchaseOrderItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrderItem
	return json.Marshal(&struct {
		Alias
		UnitCost  float64 `json:"unit_cost"`
		ItemTotal float64 `json:"item_total"`
	}{
		Alias:     Alias(poi),
		UnitCost:  float64(poi.UnitCost) / 100,
		ItemTotal: float64(poi.ItemTotal) / 100,
	})
}

func (poi *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if poi.ID == uuid.Nil {
		poi.ID = uuid.New()
	}
	return nil
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
