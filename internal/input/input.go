// Package input validates user-supplied form values before any network call
// is made. Validation failures short-circuit locally.
package input

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// The service's account rule, verbatim: an address must contain "@" and
	// end with ".com". Deliberately stricter than RFC-style email checks.
	validate.RegisterValidation("profile_email", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return strings.Contains(v, "@") && strings.HasSuffix(v, ".com")
	})
}

// Login is the login form.
type Login struct {
	Email    string `validate:"required,profile_email"`
	Password string `validate:"required,min=8"`
}

// Register is the registration form.
type Register struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,profile_email"`
	Password string `validate:"required,min=8"`
}

// AccountUpdate is the profile-update form. NewPassword is optional; when
// blank the password is left unchanged.
type AccountUpdate struct {
	FullName        string `validate:"required"`
	Email           string `validate:"required,profile_email"`
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"omitempty,min=8"`
}

// Validate checks s against its tags and returns a user-facing error for the
// first set of violations.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := fieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "profile_email":
		return fmt.Sprintf("%s must be a valid address (containing '@' and ending in '.com')", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func fieldLabel(name string) string {
	switch name {
	case "FullName":
		return "full name"
	case "CurrentPassword":
		return "current password"
	case "NewPassword":
		return "new password"
	default:
		return strings.ToLower(name)
	}
}
