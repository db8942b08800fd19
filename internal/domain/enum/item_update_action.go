package enum

import (
	"encoding/json"
	"fmt"
)

// ItemUpdateAction is the kind of amendment applied to an order or invoice
// line item after creation
type ItemUpdateAction int

const (
	ItemUpdateActionIncrease ItemUpdateAction = 0
	ItemUpdateActionDecrease ItemUpdateAction = 1
	ItemUpdateActionRemove   ItemUpdateAction = 2
)

func (a ItemUpdateAction) String() string {
	return [...]string{"increase", "decrease", "remove"}[a]
}

func (a ItemUpdateAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *ItemUpdateAction) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseItemUpdateAction(str)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseItemUpdateAction resolves the wire value, accepting the synonym pairs
// the legacy clients send
func ParseItemUpdateAction(s string) (ItemUpdateAction, error) {
	switch s {
	case "increase", "increment":
		return ItemUpdateActionIncrease, nil
	case "decrease", "decrement":
		return ItemUpdateActionDecrease, nil
	case "remove", "delete":
		return ItemUpdateActionRemove, nil
	default:
		return 0, fmt.Errorf("unknown item update action %q", s)
	}
}
