package sms

import "fmt"

// ErrorType classifies a delivery failure.
type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeRateLimit  ErrorType = "RATE_LIMIT"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// SendError is returned by senders when a message could not be delivered.
type SendError struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *SendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sms %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("sms %s error: %s", e.Type, e.Message)
}

func (e *SendError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether sending again might succeed.
func (e *SendError) Retryable() bool {
	return e.Type == ErrTypeNetwork || e.Type == ErrTypeRateLimit ||
		(e.Type == ErrTypeProvider && e.Code >= 500)
}
