package request

// CreateCardRequest registers a loyalty card
type CreateCardRequest struct {
	CardNumber    string `json:"card_number" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	PhoneNumber   string `json:"phone_number"`
	CustomerEmail string `json:"customer_email"`
	Address       string `json:"address"`
}

// RedeemRequest converts points to store credit
type RedeemRequest struct {
	CardNumber string  `json:"card_number" binding:"required"`
	Points     float64 `json:"points" binding:"required,gt=0"`
}

// StoreCreditRequest issues store credit against a card. Amount is in decimal
// currency.
type StoreCreditRequest struct {
	CardNumber string  `json:"card_number" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// LoanRepaymentRequest applies a repayment to a store loan
type LoanRepaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
