package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InstallmentStatus represents the state of a single BNPL installment.
// A Paid installment is immutable except for the audit fields set at payment.
type InstallmentStatus int

const (
	InstallmentStatusPending InstallmentStatus = 0
	InstallmentStatusPaid    InstallmentStatus = 1
)

func (s InstallmentStatus) String() string {
	return [...]string{"Pending", "Paid"}[s]
}

func (s InstallmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InstallmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InstallmentStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = InstallmentStatusPending
	case "Paid":
		*s = InstallmentStatusPaid
	}
	return nil
}

func (s InstallmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InstallmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InstallmentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InstallmentStatus(v)
	case int:
		*s = InstallmentStatus(v)
	}
	return nil
}
