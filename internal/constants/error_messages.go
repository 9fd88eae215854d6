package constants

const (
	ErrCodeAuthFailed           = "AUTH_FAILED"
	ErrCodePushFailed           = "PUSH_FAILED"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeTransactionDuplicate = "TRANSACTION_DUPLICATE"
	ErrCodeDatabase             = "DATABASE_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

const (
	ErrMsgAuthFailed           = "Failed to authenticate with Daraja API"
	ErrMsgPushFailed           = "STK Push Failed"
	ErrMsgValidationFailed     = "request validation failed"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgOrderNotFound        = "order not found"
	ErrMsgTransactionDuplicate = "transaction already exists"
	ErrMsgDatabase             = "database error"
	ErrMsgInternalError        = "Internal server error"
)

const MessageErrorFormat = "field %s is invalid"

var errorMessages = map[string]string{
	ErrCodeAuthFailed:           ErrMsgAuthFailed,
	ErrCodePushFailed:           ErrMsgPushFailed,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeOrderNotFound:        ErrMsgOrderNotFound,
	ErrCodeTransactionDuplicate: ErrMsgTransactionDuplicate,
	ErrCodeDatabase:             ErrMsgDatabase,
	ErrCodeInternalError:        ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeValidationFailed:
		return 400
	case ErrCodeOrderNotFound:
		return 404
	case ErrCodeTransactionDuplicate:
		return 409
	default:
		return 500
	}
}
