package validation

import (
	"vehicletax/internal/domain/models"
)

// Kind тип значения поля.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindNumeric
)

// CheckFunc дополнительная проверка значения поля. Вызывается только для непустых значений,
// прошедших проверку по типу. Возвращает текст ошибки или "".
type CheckFunc func(value string, state models.FormState) string

// Rule правило проверки одного поля.
type Rule struct {
	Field    string
	Label    string
	Required bool
	Kind     Kind
	Check    CheckFunc

	// RequiredMessage переопределяет сообщение об обязательности
	RequiredMessage string
}

// RuleSet упорядоченный набор правил формы.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet создает набор правил в заданном порядке.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{rules: make([]Rule, len(rules))}
	copy(rs.rules, rules)
	return rs
}

// DefaultRuleSet правила формы расчёта налога. Поле cc_power изначально необязательно:
// обязательность включает контроллер по флагу выбранной категории.
func DefaultRuleSet() *RuleSet {
	return NewRuleSet(
		Rule{Field: models.FieldRegType, Label: "Registration Type", Required: true, Kind: KindText},
		Rule{Field: models.FieldCategory, Label: "Vehicle Category", Required: true, Kind: KindText},
		Rule{
			Field:           models.FieldCCPower,
			Label:           "CC/Power",
			Kind:            KindNumeric,
			RequiredMessage: "CC/Power is required for this category.",
		},
		Rule{Field: models.FieldLastPaidDate, Label: "Last Paid Date", Required: true, Kind: KindDate},
		Rule{Field: models.FieldNextPaymentDate, Label: "Next Payment Date", Required: true, Kind: KindDate},
	)
}

// Rules возвращает копию правил в порядке объявления.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Lookup возвращает правило для поля.
func (rs *RuleSet) Lookup(field string) (Rule, bool) {
	for _, r := range rs.rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// IsRequired сообщает, обязательно ли поле.
func (rs *RuleSet) IsRequired(field string) bool {
	r, ok := rs.Lookup(field)
	return ok && r.Required
}

// SetRequired включает или выключает обязательность поля. Возвращает false, если поля нет.
func (rs *RuleSet) SetRequired(field string, required bool) bool {
	for i := range rs.rules {
		if rs.rules[i].Field == field {
			rs.rules[i].Required = required
			return true
		}
	}
	return false
}

// Clone возвращает независимую копию набора.
func (rs *RuleSet) Clone() *RuleSet {
	return NewRuleSet(rs.rules...)
}
