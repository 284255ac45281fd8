package enrollment

import "github.com/nfrund/alphaprime/internal/otp"

// View is a snapshot of a form for rendering. It never contains the
// password or the issued code.
type View struct {
	ID    string
	Kind  Kind
	State State

	Name  string
	Email string
	Phone string

	FieldErrors map[string]string
	// Message is the form-level error shown on the current step.
	Message string

	Slots      [otp.Length]string
	Focus      int
	CodeLocked bool
	Hint       string

	SuccessName string
	DispatchID  string
}

// FieldError returns the validation message for a field, if any.
func (v View) FieldError(field string) string {
	return v.FieldErrors[field]
}
