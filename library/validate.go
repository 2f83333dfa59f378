package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// The persistence format cannot escape commas, so operator-entered text
// fields must not contain them. 0x2C is the comma rune for excludesall.

// BookInput is the operator-entered form of a new catalog entry.
type BookInput struct {
	Title     string `validate:"required,excludesall=0x2C"`
	Author    string `validate:"required,excludesall=0x2C"`
	Publisher string `validate:"required,excludesall=0x2C"`
	Year      int    `validate:"gte=0,lte=9999"`
	ISBN      string `validate:"required,excludesall=0x2C"`
}

// PatronInput is the operator-entered form of a new roster entry.
type PatronInput struct {
	ID   int    `validate:"gt=0"`
	Name string `validate:"required,excludesall=0x2C"`
	Role string `validate:"oneof=Student Faculty Librarian"`
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s %s", v.Field, v.Message)
}

// ValidationErrors aggregates every rejected field of one input.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validator checks operator inputs at the shell boundary before they reach
// the domain model.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateBook reports every invalid field of a new catalog entry.
func (v *Validator) ValidateBook(in BookInput) error {
	return v.translate(v.validate.Struct(in))
}

// ValidatePatron reports every invalid field of a new roster entry.
func (v *Validator) ValidatePatron(in PatronInput) error {
	return v.translate(v.validate.Struct(in))
}

func (v *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "excludesall":
		return "must not contain commas"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
