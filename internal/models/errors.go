package models

import "errors"

// ErrDuplicate нарушение уникальности (имя пользователя, email, email клиента).
var ErrDuplicate = errors.New("duplicate record")

// ValidationError ошибка данных формы. Message показывается пользователю как есть.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// NewValidationError создаёт ValidationError с сообщением для пользователя.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
