package daraja

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	ErrCodePushRequestFailed    = "PUSH_REQUEST_FAILED"
)

var (
	ErrAuthenticationFailed = errors.New(ErrCodeAuthenticationFailed)
	ErrPushRequestFailed    = errors.New(ErrCodePushRequestFailed)
)

// PushError carries whatever diagnostic payload the processor returned on a
// non-2xx push response. It unwraps to ErrPushRequestFailed.
type PushError struct {
	StatusCode int
	Details    json.RawMessage
}

func (e *PushError) Error() string {
	return fmt.Sprintf("push request failed with status %d", e.StatusCode)
}

func (e *PushError) Unwrap() error {
	return ErrPushRequestFailed
}
