package enrollment

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrBusy is returned when an operation arrives while a send or verify
	// call is outstanding.
	ErrBusy = errors.New("form is waiting for a response")
	// ErrInvalidState is returned when an operation does not apply to the
	// current step.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrValidation is matched by *ValidationError.
	ErrValidation = errors.New("form validation failed")
	// ErrCodeUnusable is returned by Services.VerifyCode when the sent code
	// can no longer be checked (expired, used up or unknown). A new code has
	// to be requested.
	ErrCodeUnusable = errors.New("verification code can no longer be used")
	// ErrFormNotFound is returned by the Store for unknown or expired forms.
	ErrFormNotFound = errors.New("form not found")
)

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
