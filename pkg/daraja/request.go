package daraja

// TransactionTypePayBill is the fixed transaction-type tag sent on every push.
const TransactionTypePayBill = "CustomerPayBillOnline"

// PushRequest is what callers of the client supply. The wire payload is
// assembled internally since password and timestamp change per request.
type PushRequest struct {
	PhoneNumber      string
	Amount           int64
	AccountReference string
	TransactionDesc  string
}

type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}
