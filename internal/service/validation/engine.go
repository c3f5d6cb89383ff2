// Package validation проверяет поля формы и форму целиком по набору правил.
// Движок не хранит состояния между вызовами и не изменяет FormState.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vehicletax/internal/domain/models"
	"vehicletax/pkg/bsdate"
)

// MsgDateOrder сообщение о нарушении порядка дат.
const MsgDateOrder = "Next payment date must be after last paid date."

// Engine проверяет значения по правилам.
type Engine struct {
	dateRange bsdate.Range
}

// NewEngine создает движок с диапазоном лет для полей-дат.
func NewEngine(dateRange bsdate.Range) *Engine {
	return &Engine{dateRange: dateRange}
}

// DateRange возвращает диапазон лет, с которым работает движок.
func (e *Engine) DateRange() bsdate.Range {
	return e.dateRange
}

// ValidateField проверяет одно поле без учёта остальных.
// Возвращает nil, если значение допустимо или поле не описано правилами.
func (e *Engine) ValidateField(name, value string, rules *RuleSet) *models.ValidationError {
	rule, ok := rules.Lookup(name)
	if !ok {
		return nil
	}
	return e.checkRule(rule, value, models.NewFormState())
}

// ValidateForm проверяет всю форму. Ошибки идут в порядке правил, ошибка порядка дат
// добавляется последней и относится к полю next_payment_date.
// Пустой результат означает, что форму можно отправлять.
func (e *Engine) ValidateForm(state models.FormState, rules *RuleSet) []models.ValidationError {
	var errs []models.ValidationError

	for _, rule := range rules.Rules() {
		if verr := e.checkRule(rule, state.Get(rule.Field), state); verr != nil {
			errs = append(errs, *verr)
		}
	}

	if verr := e.checkDateOrder(state); verr != nil {
		errs = append(errs, *verr)
	}

	return errs
}

// ValidateFieldInForm проверяет поле в контексте формы: для полей-дат дополнительно
// применяется правило порядка дат (ошибка всегда относится к next_payment_date).
func (e *Engine) ValidateFieldInForm(state models.FormState, rules *RuleSet, name string) *models.ValidationError {
	rule, ok := rules.Lookup(name)
	if !ok {
		return nil
	}
	if verr := e.checkRule(rule, state.Get(name), state); verr != nil {
		return verr
	}
	if name == models.FieldNextPaymentDate {
		return e.checkDateOrder(state)
	}
	return nil
}

// DateOrderError возвращает ошибку порядка дат, если обе даты корректны и порядок нарушен.
func (e *Engine) DateOrderError(state models.FormState) *models.ValidationError {
	return e.checkDateOrder(state)
}

func (e *Engine) checkRule(rule Rule, value string, state models.FormState) *models.ValidationError {
	value = strings.TrimSpace(value)

	if value == "" {
		if rule.Required {
			return &models.ValidationError{Field: rule.Field, Message: requiredMessage(rule)}
		}
		return nil
	}

	var msg string
	switch rule.Kind {
	case KindDate:
		msg = e.dateMessage(rule, value)
	case KindNumeric:
		msg = numericMessage(rule, value)
	}

	if msg == "" && rule.Check != nil {
		msg = rule.Check(value, state)
	}
	if msg != "" {
		return &models.ValidationError{Field: rule.Field, Message: msg}
	}
	return nil
}

func (e *Engine) checkDateOrder(state models.FormState) *models.ValidationError {
	last := strings.TrimSpace(state.Get(models.FieldLastPaidDate))
	next := strings.TrimSpace(state.Get(models.FieldNextPaymentDate))

	if !bsdate.Validate(last, e.dateRange) || !bsdate.Validate(next, e.dateRange) {
		return nil
	}
	if !bsdate.Before(last, next) {
		return &models.ValidationError{Field: models.FieldNextPaymentDate, Message: MsgDateOrder}
	}
	return nil
}

func (e *Engine) dateMessage(rule Rule, value string) string {
	err := bsdate.Check(value, e.dateRange)
	if err == nil {
		return ""
	}

	var yre *bsdate.YearRangeError
	switch {
	case errors.As(err, &yre):
		return fmt.Sprintf("Year must be between %d and %d BS.", e.dateRange.MinYear, e.dateRange.MaxYear)
	case errors.Is(err, bsdate.ErrMonthRange):
		return "Month must be between 1 and 12."
	case errors.Is(err, bsdate.ErrDayRange):
		return "Day must be between 1 and 32."
	default:
		return fmt.Sprintf("%s must be in YYYY-MM-DD format.", rule.Label)
	}
}

func numericMessage(rule Rule, value string) string {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Sprintf("%s must be a number.", rule.Label)
	}
	if rule.Required && !d.IsPositive() {
		return fmt.Sprintf("%s must be greater than 0.", rule.Label)
	}
	return ""
}

func requiredMessage(rule Rule) string {
	if rule.RequiredMessage != "" {
		return rule.RequiredMessage
	}
	return fmt.Sprintf("%s is required.", rule.Label)
}
