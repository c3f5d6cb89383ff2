package controller

import (
	"errors"

	"vehicletax/internal/domain/models"
)

// ErrNoResult печать недоступна: нет успешного результата расчёта.
var ErrNoResult = errors.New("controller: no calculation result to print")

// MsgInvalidForm текст предупреждения при отправке некорректной формы.
const MsgInvalidForm = "Please fill all required fields correctly."

// MsgCalculated текст уведомления об успешном расчёте.
const MsgCalculated = "Calculation completed successfully!"

// ValidationError форма не прошла проверку перед отправкой.
type ValidationError struct {
	Message string
	Fields  []models.ValidationError
}

func (e *ValidationError) Error() string {
	return e.Message
}
