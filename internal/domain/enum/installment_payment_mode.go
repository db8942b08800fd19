package enum

import (
	"encoding/json"
	"fmt"
)

// InstallmentPaymentMode selects how a BNPL repayment is applied: against one
// named installment, or swept across the N earliest-due pending installments.
// Resolved once at the HTTP boundary, never compared as a string in the engine.
type InstallmentPaymentMode int

const (
	InstallmentPaymentModeSingle     InstallmentPaymentMode = 0
	InstallmentPaymentModeSequential InstallmentPaymentMode = 1
)

func (m InstallmentPaymentMode) String() string {
	return [...]string{"single", "sequential"}[m]
}

func (m InstallmentPaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *InstallmentPaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseInstallmentPaymentMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseInstallmentPaymentMode resolves the wire value into a mode
func ParseInstallmentPaymentMode(s string) (InstallmentPaymentMode, error) {
	switch s {
	case "single":
		return InstallmentPaymentModeSingle, nil
	case "sequential":
		return InstallmentPaymentModeSequential, nil
	default:
		return 0, fmt.Errorf("unknown installment payment mode %q", s)
	}
}
