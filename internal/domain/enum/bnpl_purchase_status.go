package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BNPLPurchaseStatus represents the repayment state of a BNPL purchase.
// Derived from amount_paid vs total_amount like OrderStatus, but a purchase
// with nothing repaid is Active rather than Pending.
type BNPLPurchaseStatus int

const (
	BNPLPurchaseStatusActive        BNPLPurchaseStatus = 0
	BNPLPurchaseStatusPartiallyPaid BNPLPurchaseStatus = 1
	BNPLPurchaseStatusPaid          BNPLPurchaseStatus = 2
)

func (s BNPLPurchaseStatus) String() string {
	return [...]string{"Active", "Partially Paid", "Paid"}[s]
}

func (s BNPLPurchaseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BNPLPurchaseStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BNPLPurchaseStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = BNPLPurchaseStatusActive
	case "Partially Paid":
		*s = BNPLPurchaseStatusPartiallyPaid
	case "Paid":
		*s = BNPLPurchaseStatusPaid
	}
	return nil
}

func (s BNPLPurchaseStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BNPLPurchaseStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BNPLPurchaseStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BNPLPurchaseStatus(v)
	case int:
		*s = BNPLPurchaseStatus(v)
	}
	return nil
}
