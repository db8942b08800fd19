package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentDirection marks whether money moved into or out of the business
type PaymentDirection int

const (
	PaymentDirectionIncoming PaymentDirection = 0
	PaymentDirectionOutgoing PaymentDirection = 1
)

func (d PaymentDirection) String() string {
	return [...]string{"Incoming", "Outgoing"}[d]
}

func (d PaymentDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *PaymentDirection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = PaymentDirection(i)
		return nil
	}
	switch str {
	case "Incoming":
		*d = PaymentDirectionIncoming
	case "Outgoing":
		*d = PaymentDirectionOutgoing
	}
	return nil
}

func (d PaymentDirection) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *PaymentDirection) Scan(value interface{}) error {
	if value == nil {
		*d = PaymentDirectionIncoming
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = PaymentDirection(v)
	case int:
		*d = PaymentDirection(v)
	}
	return nil
}
