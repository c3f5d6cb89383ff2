package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicletax/internal/domain/models"
	"vehicletax/pkg/bsdate"
)

func stateOf(values map[string]string) models.FormState {
	s := models.NewFormState()
	for k, v := range values {
		s.Values[k] = v
	}
	return s
}

func validState() models.FormState {
	return stateOf(map[string]string{
		models.FieldRegType:         "1",
		models.FieldCategory:        "2",
		models.FieldCCPower:         "100",
		models.FieldLastPaidDate:    "2078-01-01",
		models.FieldNextPaymentDate: "2079-06-15",
	})
}

func TestValidateFormValid(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	rules := DefaultRuleSet()
	rules.SetRequired(models.FieldCCPower, true)

	assert.Empty(t, e.ValidateForm(validState(), rules))
}

func TestValidateFormRequiredFields(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	errs := e.ValidateForm(models.NewFormState(), DefaultRuleSet())

	fields := make([]string, 0, len(errs))
	for _, verr := range errs {
		fields = append(fields, verr.Field)
	}
	assert.Equal(t, []string{
		models.FieldRegType,
		models.FieldCategory,
		models.FieldLastPaidDate,
		models.FieldNextPaymentDate,
	}, fields)
	assert.Equal(t, "Registration Type is required.", errs[0].Message)
}

func TestValidateFormDateOrder(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	state := validState()
	state.Values[models.FieldLastPaidDate] = "2079-01-01"
	state.Values[models.FieldNextPaymentDate] = "2078-12-30"

	errs := e.ValidateForm(state, DefaultRuleSet())
	require.Len(t, errs, 1)
	assert.Equal(t, models.FieldNextPaymentDate, errs[0].Field)
	assert.Equal(t, MsgDateOrder, errs[0].Message)

	t.Run("equal dates rejected", func(t *testing.T) {
		state.Values[models.FieldNextPaymentDate] = "2079-01-01"
		errs := e.ValidateForm(state, DefaultRuleSet())
		require.Len(t, errs, 1)
		assert.Equal(t, models.FieldNextPaymentDate, errs[0].Field)
	})

	t.Run("order not checked when a date is invalid", func(t *testing.T) {
		state.Values[models.FieldLastPaidDate] = "2095-01-01"
		state.Values[models.FieldNextPaymentDate] = "2078-01-01"
		errs := e.ValidateForm(state, DefaultRuleSet())
		require.Len(t, errs, 1)
		assert.Equal(t, models.FieldLastPaidDate, errs[0].Field)
		assert.Equal(t, "Year must be between 2070 and 2090 BS.", errs[0].Message)
	})
}

func TestDisplacementRequirement(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)

	t.Run("capability off, empty value", func(t *testing.T) {
		rules := DefaultRuleSet()
		rules.SetRequired(models.FieldCCPower, false)
		state := validState()
		state.Values[models.FieldCCPower] = ""

		assert.Empty(t, e.ValidateForm(state, rules))
	})

	t.Run("capability on, zero value", func(t *testing.T) {
		rules := DefaultRuleSet()
		rules.SetRequired(models.FieldCCPower, true)
		state := validState()
		state.Values[models.FieldCCPower] = "0"

		errs := e.ValidateForm(state, rules)
		require.Len(t, errs, 1)
		assert.Equal(t, models.FieldCCPower, errs[0].Field)
		assert.Equal(t, "CC/Power must be greater than 0.", errs[0].Message)
	})

	t.Run("capability on, empty value", func(t *testing.T) {
		rules := DefaultRuleSet()
		rules.SetRequired(models.FieldCCPower, true)
		verr := e.ValidateField(models.FieldCCPower, "  ", rules)
		require.NotNil(t, verr)
		assert.Equal(t, "CC/Power is required for this category.", verr.Message)
	})

	t.Run("negative and non-numeric", func(t *testing.T) {
		rules := DefaultRuleSet()
		rules.SetRequired(models.FieldCCPower, true)
		assert.NotNil(t, e.ValidateField(models.FieldCCPower, "-5", rules))
		assert.NotNil(t, e.ValidateField(models.FieldCCPower, "abc", rules))
		assert.Nil(t, e.ValidateField(models.FieldCCPower, "124.5", rules))
	})
}

func TestValidateFieldDateMessages(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	rules := DefaultRuleSet()

	tests := []struct {
		value string
		msg   string
	}{
		{"2078-1-1", "Last Paid Date must be in YYYY-MM-DD format."},
		{"2060-01-01", "Year must be between 2070 and 2090 BS."},
		{"2078-13-01", "Month must be between 1 and 12."},
		{"2078-12-33", "Day must be between 1 and 32."},
	}
	for _, tt := range tests {
		verr := e.ValidateField(models.FieldLastPaidDate, tt.value, rules)
		require.NotNil(t, verr, tt.value)
		assert.Equal(t, tt.msg, verr.Message, tt.value)
	}

	assert.Nil(t, e.ValidateField(models.FieldLastPaidDate, "2078-12-32", rules))
	assert.Nil(t, e.ValidateField("unknown_field", "", rules))
}

func TestValidateFieldInForm(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	rules := DefaultRuleSet()
	state := validState()
	state.Values[models.FieldNextPaymentDate] = "2077-01-01"

	verr := e.ValidateFieldInForm(state, rules, models.FieldNextPaymentDate)
	require.NotNil(t, verr)
	assert.Equal(t, MsgDateOrder, verr.Message)

	// Ошибка порядка всегда относится к более поздней дате
	assert.Nil(t, e.ValidateFieldInForm(state, rules, models.FieldLastPaidDate))
}

func TestCustomCheck(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	rules := NewRuleSet(Rule{
		Field:    models.FieldRegType,
		Label:    "Registration Type",
		Required: true,
		Check: func(value string, _ models.FormState) string {
			if value != "1" && value != "2" {
				return "Unknown registration type."
			}
			return ""
		},
	})

	assert.Nil(t, e.ValidateField(models.FieldRegType, "2", rules))
	verr := e.ValidateField(models.FieldRegType, "9", rules)
	require.NotNil(t, verr)
	assert.Equal(t, "Unknown registration type.", verr.Message)
}

func TestValidateFormIsDeterministic(t *testing.T) {
	e := NewEngine(bsdate.DefaultRange)
	rules := DefaultRuleSet()
	state := models.NewFormState()

	first := e.ValidateForm(state, rules)
	second := e.ValidateForm(state, rules)
	assert.Equal(t, first, second)
}

func TestRuleSetClone(t *testing.T) {
	rules := DefaultRuleSet()
	clone := rules.Clone()
	clone.SetRequired(models.FieldCCPower, true)

	assert.False(t, rules.IsRequired(models.FieldCCPower))
	assert.True(t, clone.IsRequired(models.FieldCCPower))
	assert.False(t, clone.SetRequired("missing", true))
}
