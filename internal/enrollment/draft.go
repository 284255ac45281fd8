package enrollment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft is the details entered on the first step.
type Draft struct {
	Kind     Kind   `json:"kind" validate:"required,oneof=register enroll"`
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,contains=@"`
	Phone    string `json:"phone" form:"phone" validate:"required"`
	Password string `json:"-" form:"password" validate:"required_if=Kind register"`
}

var validate = validator.New()

// Normalize trims surrounding whitespace from every field except the password.
func (d *Draft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
}

// Validate checks the required fields for the draft's kind and returns a
// *ValidationError describing every failure.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		fields[name] = fieldMessage(name, fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

// Set assigns a single field by its form name.
func (d *Draft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "password":
		d.Password = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func fieldMessage(field, tag string) string {
	label := map[string]string{
		"name":     "Full name",
		"email":    "Email",
		"phone":    "Phone number",
		"password": "Password",
		"kind":     "Form type",
	}[field]
	if label == "" {
		label = field
	}

	switch tag {
	case "required", "required_if":
		return label + " is required."
	case "contains":
		return "Enter a valid email address."
	default:
		return label + " is invalid."
	}
}
