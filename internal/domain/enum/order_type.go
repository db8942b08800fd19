package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType distinguishes a fully settled sale from a BNPL credit purchase
type OrderType int

const (
	OrderTypePaid OrderType = 0
	OrderTypeBNPL OrderType = 1
)

func (t OrderType) String() string {
	return [...]string{"Paid", "BNPL"}[t]
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = OrderType(i)
		return nil
	}
	switch str {
	case "Paid":
		*t = OrderTypePaid
	case "BNPL":
		*t = OrderTypeBNPL
	}
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypePaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
