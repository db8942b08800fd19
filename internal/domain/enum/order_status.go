package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the payment status of an order. It is always derived
// from amount_received vs total_amount, never hand-set after creation.
type OrderStatus int

const (
	OrderStatusPending       OrderStatus = 0
	OrderStatusPartiallyPaid OrderStatus = 1
	OrderStatusPaid          OrderStatus = 2
)

func (s OrderStatus) String() string {
	return [...]string{"Pending", "Partially Paid", "Paid"}[s]
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Partially Paid":
		*s = OrderStatusPartiallyPaid
	case "Paid":
		*s = OrderStatusPaid
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
