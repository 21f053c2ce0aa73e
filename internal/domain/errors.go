package domain

import "fmt"

// InvalidInputError reports a value rejected at a construction or
// parsing boundary. It is always surfaced to the caller; nothing in the
// core recovers from it.
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// NewInvalidInput creates an InvalidInputError for a named field.
func NewInvalidInput(field, message string) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: message}
}
