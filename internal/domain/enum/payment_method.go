package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod is the tender used at the point of sale
type PaymentMethod int

const (
	PaymentMethodCash        PaymentMethod = 0
	PaymentMethodMobile      PaymentMethod = 1
	PaymentMethodSplit       PaymentMethod = 2
	PaymentMethodStoreCredit PaymentMethod = 3
	PaymentMethodBNPL        PaymentMethod = 4
)

func (m PaymentMethod) String() string {
	return [...]string{"cash", "mobile", "split", "store_credit", "bnpl"}[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}

// ParsePaymentMethod resolves the wire value into a payment method
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "cash":
		return PaymentMethodCash, nil
	case "mobile":
		return PaymentMethodMobile, nil
	case "split":
		return PaymentMethodSplit, nil
	case "store_credit":
		return PaymentMethodStoreCredit, nil
	case "bnpl":
		return PaymentMethodBNPL, nil
	default:
		return 0, fmt.Errorf("unknown payment method %q", s)
	}
}
