package enum

import "fmt"

// OverpaymentPolicy decides what happens when an allocation exceeds the
// outstanding balance of its target. The legacy system silently allowed
// overpayment; Allow preserves that, Reject and Clamp close the gap.
type OverpaymentPolicy int

const (
	OverpaymentPolicyAllow  OverpaymentPolicy = 0
	OverpaymentPolicyReject OverpaymentPolicy = 1
	OverpaymentPolicyClamp  OverpaymentPolicy = 2
)

func (p OverpaymentPolicy) String() string {
	return [...]string{"allow", "reject", "clamp"}[p]
}

// ParseOverpaymentPolicy resolves the configured policy name
func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch s {
	case "allow", "":
		return OverpaymentPolicyAllow, nil
	case "reject":
		return OverpaymentPolicyReject, nil
	case "clamp":
		return OverpaymentPolicyClamp, nil
	default:
		return 0, fmt.Errorf("unknown overpayment policy %q", s)
	}
}
