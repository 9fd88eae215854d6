package daraja

import "fmt"

// ResponseCodeSuccess is the processor's acceptance sentinel. It is a string,
// not a number; the API returns `"ResponseCode": "0"` on accepted pushes.
const ResponseCodeSuccess = "0"

// ReceiptMetadataName is the callback metadata item carrying the settlement
// receipt on successful payments.
const ReceiptMetadataName = "MpesaReceiptNumber"

type PushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// CallbackEnvelope is the webhook payload the processor POSTs to the
// configured callback URL after the payer resolves the push prompt.
type CallbackEnvelope struct {
	Body CallbackBody `json:"Body"`
}

type CallbackBody struct {
	StkCallback *StkCallback `json:"stkCallback"`
}

type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// ReceiptNumber extracts the settlement receipt from the callback metadata.
// Returns "" when no receipt item is present, which is the case on failures.
func (c *StkCallback) ReceiptNumber() string {
	if c.CallbackMetadata == nil {
		return ""
	}

	for _, item := range c.CallbackMetadata.Item {
		if item.Name != ReceiptMetadataName {
			continue
		}

		if s, ok := item.Value.(string); ok {
			return s
		}

		return fmt.Sprint(item.Value)
	}

	return ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}
