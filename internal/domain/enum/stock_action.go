package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StockAction is the kind of manual stock adjustment. The wire values mirror
// the restock form ("add stock" / "remove stock"); they are resolved here once
// and never string-compared inside the engine.
type StockAction int

const (
	StockActionAdd    StockAction = 0
	StockActionRemove StockAction = 1
)

func (a StockAction) String() string {
	return [...]string{"add stock", "remove stock"}[a]
}

// Delta converts a requested quantity into the signed adjustment delta
func (a StockAction) Delta(quantity int) int {
	if a == StockActionRemove {
		return -quantity
	}
	return quantity
}

func (a StockAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *StockAction) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseStockAction(str)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a StockAction) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *StockAction) Scan(value interface{}) error {
	if value == nil {
		*a = StockActionAdd
		return nil
	}
	switch v := value.(type) {
	case int64:
		*a = StockAction(v)
	case int:
		*a = StockAction(v)
	}
	return nil
}

// ParseStockAction resolves the wire value into a stock action
func ParseStockAction(s string) (StockAction, error) {
	switch s {
	case "add stock", "add":
		return StockActionAdd, nil
	case "remove stock", "remove":
		return StockActionRemove, nil
	default:
		return 0, fmt.Errorf("unknown stock action %q", s)
	}
}
