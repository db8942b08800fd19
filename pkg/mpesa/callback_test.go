package mpesa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const successCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 1500.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254708374149}
        ]
      }
    }
  }
}`

const cancelledCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-2",
      "CheckoutRequestID": "ws_CO_191220191020363926",
      "ResultCode": 1032,
      "ResultDesc": "Request cancelled by user."
    }
  }
}`

func TestFlattenSuccessCallback(t *testing.T) {
	var envelope CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(successCallback), &envelope))

	result := Flatten(&envelope)
	assert.True(t, result.Success())
	assert.Equal(t, "ws_CO_191220191020363925", result.CheckoutRequestID)
	assert.Equal(t, 1500.00, result.Amount)
	assert.Equal(t, "NLJ7RT61SV", result.MpesaReceiptNumber)
	assert.Equal(t, int64(20191219102115), result.TransactionDate)
	// Daraja sends the phone as a JSON number
	assert.Equal(t, "254708374149", result.PhoneNumber)
}

func TestFlattenKeepsTrailingZerosInPhone(t *testing.T) {
	payload := `{
	  "Body": {
	    "stkCallback": {
	      "MerchantRequestID": "29115-34620561-3",
	      "CheckoutRequestID": "ws_CO_191220191020363927",
	      "ResultCode": 0,
	      "ResultDesc": "The service request is processed successfully.",
	      "CallbackMetadata": {
	        "Item": [
	          {"Name": "Amount", "Value": 200.00},
	          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SW"},
	          {"Name": "PhoneNumber", "Value": 254708374100}
	        ]
	      }
	    }
	  }
	}`

	var envelope CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

	// Every digit of the number is significant, zeros included
	result := Flatten(&envelope)
	assert.Equal(t, "254708374100", result.PhoneNumber)
}

func TestFlattenCancelledCallback(t *testing.T) {
	var envelope CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(cancelledCallback), &envelope))

	result := Flatten(&envelope)
	assert.False(t, result.Success())
	assert.Equal(t, 1032, result.ResultCode)
	assert.Zero(t, result.Amount)
	assert.Empty(t, result.MpesaReceiptNumber)
	assert.Empty(t, result.PhoneNumber)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+254712345678", "254712345678"},
		{"0712345678", "254712345678"},
		{"254712345678", "254712345678"},
		{" 0712345678 ", "254712345678"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), tt.in)
	}
}
