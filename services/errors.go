package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a message that is safe to show in the admin UI.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func validationError(format string, args ...any) error {
	return &AppError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...any) error {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// notFound is deliberately generic: callers must not learn whether a slug is
// missing or only hidden behind a disabled ancestor.
var notFound = &AppError{Kind: ErrNotFound, Message: "not found"}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the `validate` tags of payload and flattens the result
// into one readable message.
func validateStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate payload: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return validationError("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "mongodb":
		return field + " must be a valid id"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
