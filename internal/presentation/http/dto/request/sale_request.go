package request

import "github.com/google/uuid"

// SaleItemRequest is one cart line of a sale
type SaleItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// BNPLTermsRequest carries the financing terms of a BNPL sale. Amounts are in
// decimal currency.
type BNPLTermsRequest struct {
	ProviderID           uuid.UUID `json:"provider_id" binding:"required"`
	DownPayment          float64   `json:"down_payment" binding:"gte=0"`
	NumberOfInstallments int       `json:"number_of_installments" binding:"required,gt=0"`
	PaymentIntervalDays  int       `json:"payment_interval_days" binding:"required,gt=0"`
}

// PlaceSaleRequest represents a point-of-sale checkout
type PlaceSaleRequest struct {
	Items             []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod     string            `json:"payment_method" binding:"required"`
	AmountReceived    float64           `json:"amount_received" binding:"gte=0"`
	SplitCashAmount   float64           `json:"split_cash_amount" binding:"gte=0"`
	SplitMobileAmount float64           `json:"split_mobile_amount" binding:"gte=0"`
	CustomerName      string            `json:"customer_name"`
	LoyaltyCardNumber string            `json:"loyalty_card_number"`
	RedeemPoints      float64           `json:"redeem_points" binding:"gte=0"`
	MobileNumber      string            `json:"mobile_number"`
	BNPL              *BNPLTermsRequest `json:"bnpl"`
}

// UpdateOrderItemRequest amends one line of an order
type UpdateOrderItemRequest struct {
	Action   string `json:"action" binding:"required"`
	Quantity int    `json:"quantity"`
}
