package request

import "github.com/google/uuid"

// CreateSupplierRequest registers a supplier
type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	LeadTimeDays int    `json:"lead_time_days" binding:"gte=0"`
	PaymentTerms string `json:"payment_terms"`
}

// CreatePurchaseOrderRequest opens a purchase order with a supplier
type CreatePurchaseOrderRequest struct {
	SupplierID           uuid.UUID `json:"supplier_id" binding:"required"`
	ExpectedDeliveryDate string    `json:"expected_delivery_date"`
}

// AddPurchaseOrderItemRequest appends a line to a purchase order
type AddPurchaseOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdatePurchaseOrderItemRequest amends a purchase order line
type UpdatePurchaseOrderItemRequest struct {
	Action   string `json:"action" binding:"required"`
	Quantity int    `json:"quantity"`
}

// ReceiveGoodsRequest records a goods receipt against a purchase order line
type ReceiveGoodsRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// CreateSupplyRequestRequest records a branch's ask for stock
type CreateSupplyRequestRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateSupplyRequestStatusRequest moves a supply request through its flow
type UpdateSupplyRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateSupplierInvoiceRequest records a bill from a supplier. Amount is in
// decimal currency.
type CreateSupplierInvoiceRequest struct {
	SupplierID      uuid.UUID  `json:"supplier_id" binding:"required"`
	PurchaseOrderID *uuid.UUID `json:"purchase_order_id"`
	InvoiceNumber   string     `json:"invoice_number" binding:"required"`
	InvoiceDate     string     `json:"invoice_date"`
	DueDate         string     `json:"due_date"`
	TotalAmount     float64    `json:"total_amount" binding:"required,gt=0"`
}
