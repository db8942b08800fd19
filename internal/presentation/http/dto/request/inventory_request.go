package request

import "github.com/google/uuid"

// CreateItemRequest registers a stock item. Prices are in decimal currency.
type CreateItemRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Barcode      string     `json:"barcode"`
	Name         string     `json:"name" binding:"required,min=1,max=255"`
	Quantity     int        `json:"quantity" binding:"gte=0"`
	BuyingPrice  float64    `json:"buying_price" binding:"gte=0"`
	SellingPrice float64    `json:"selling_price" binding:"gte=0"`
}

// RestockRequest applies a manual stock action to an item
type RestockRequest struct {
	Action   string `json:"action" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateCategoryRequest registers an item category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
