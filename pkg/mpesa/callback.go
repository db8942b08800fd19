package mpesa

import "strings"

// CallbackEnvelope is the raw STK push result delivered to the callback URL
type CallbackEnvelope struct {
	Body struct {
		STKCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// CallbackResult is the flattened, predictable form of a callback
type CallbackResult struct {
	MerchantRequestID  string
	CheckoutRequestID  string
	ResultCode         int
	ResultDesc         string
	Amount             float64
	MpesaReceiptNumber string
	TransactionDate    int64
	PhoneNumber        string
}

// Success reports whether the customer completed the payment
func (r *CallbackResult) Success() bool {
	return r.ResultCode == 0
}

// Flatten cleans the nested callback payload into a CallbackResult
func Flatten(envelope *CallbackEnvelope) *CallbackResult {
	stk := envelope.Body.STKCallback

	result := &CallbackResult{
		MerchantRequestID: stk.MerchantRequestID,
		CheckoutRequestID: stk.CheckoutRequestID,
		ResultCode:        stk.ResultCode,
		ResultDesc:        stk.ResultDesc,
	}

	for _, item := range stk.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			if v, ok := item.Value.(float64); ok {
				result.Amount = v
			}
		case "MpesaReceiptNumber":
			if v, ok := item.Value.(string); ok {
				result.MpesaReceiptNumber = v
			}
		case "TransactionDate":
			if v, ok := item.Value.(float64); ok {
				result.TransactionDate = int64(v)
			}
		case "PhoneNumber":
			switch v := item.Value.(type) {
			case string:
				result.PhoneNumber = v
			case float64:
				result.PhoneNumber = formatFloat(v)
			}
		}
	}

	return result
}

func formatFloat(v float64) string {
	// Phone numbers arrive as JSON numbers; render without exponent or decimals.
	n := int64(v)
	digits := make([]byte, 0, 16)
	if n == 0 {
		return "0"
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// NormalizePhone converts a phone number to the 2547XXXXXXXX form the API requires
func NormalizePhone(phoneNumber string) string {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if strings.HasPrefix(phoneNumber, "+") {
		return phoneNumber[1:]
	}
	if strings.HasPrefix(phoneNumber, "0") {
		return "254" + phoneNumber[1:]
	}
	return phoneNumber
}
