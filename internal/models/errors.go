package models

import "errors"

var (
	ErrNoData      = errors.New("no data")
	ErrUnknownGame = errors.New("unknown game")
)

// ValidationError carries a message meant for the person who sent the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
