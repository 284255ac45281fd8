package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// DetailsRequest is the details step submission. Required-field rules live
// on enrollment.Draft so they produce per-field messages; this only bounds
// the input size.
type DetailsRequest struct {
	Name     string `form:"name" validate:"max=100"`
	Email    string `form:"email" validate:"max=254"`
	Phone    string `form:"phone" validate:"max=32"`
	Password string `form:"password" validate:"max=72"`
}

// DigitRequest is a keystroke in one code slot.
type DigitRequest struct {
	Slot  int    `param:"slot" validate:"min=0,max=3"`
	Digit string `form:"digit" validate:"max=8"`
}

// SlotRequest addresses a code slot without a value.
type SlotRequest struct {
	Slot int `param:"slot" validate:"min=0,max=3"`
}

// PasteRequest carries clipboard text pasted into the code input. Its length
// is not bounded: the input keeps only the first four characters.
type PasteRequest struct {
	Text string `form:"text"`
}
