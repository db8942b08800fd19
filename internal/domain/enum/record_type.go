package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RecordType marks a ledger row as a debit or a credit. Exactly one of the
// row's debit/credit columns is non-zero per record type.
type RecordType int

const (
	RecordTypeDebit  RecordType = 0
	RecordTypeCredit RecordType = 1
)

func (t RecordType) String() string {
	return [...]string{"Debit", "Credit"}[t]
}

func (t RecordType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RecordType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = RecordType(i)
		return nil
	}
	switch str {
	case "Debit":
		*t = RecordTypeDebit
	case "Credit":
		*t = RecordTypeCredit
	}
	return nil
}

func (t RecordType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *RecordType) Scan(value interface{}) error {
	if value == nil {
		*t = RecordTypeDebit
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = RecordType(v)
	case int:
		*t = RecordType(v)
	}
	return nil
}
