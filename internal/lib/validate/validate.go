// Package validate проверяет данные форм с помощью go-playground/validator
// и превращает нарушения в понятные пользователю сообщения.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Validator обёртка над validator.Validate.
type Validator struct {
	v *validator.Validate
}

// New создаёт Validator.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Check проверяет структуру. Если не заполнено хотя бы одно обязательное поле,
// возвращается ValidationError с requiredMsg, иначе сообщение собирается по нарушенным правилам.
func (val *Validator) Check(s any, requiredMsg string) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate.Check: %w", err)
	}
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return models.NewValidationError(requiredMsg)
		}
	}
	return models.NewValidationError(Message(errs))
}

// Message формирует текст по списку нарушений, объединяя их через запятую.
func Message(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is a required field", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", field))
		case "numeric":
			msgs = append(msgs, fmt.Sprintf("%s must be a number", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
