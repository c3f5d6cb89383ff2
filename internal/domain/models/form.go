package models

// Имена полей формы расчёта налога. Совпадают с именами полей HTTP-запроса.
const (
	FieldRegType         = "reg_type"
	FieldCategory        = "category"
	FieldCCPower         = "cc_power"
	FieldLastPaidDate    = "last_paid_date"
	FieldNextPaymentDate = "next_payment_date"
)

// FormFields порядок полей формы (используется при валидации и отображении).
var FormFields = []string{
	FieldRegType,
	FieldCategory,
	FieldCCPower,
	FieldLastPaidDate,
	FieldNextPaymentDate,
}

// FormState содержит сырые значения полей формы и признаки dirty/valid для каждого поля.
// Изменяется только контроллером формы.
type FormState struct {
	Values map[string]string
	Dirty  map[string]bool
	Valid  map[string]bool
}

// NewFormState создаёт пустое состояние формы.
func NewFormState() FormState {
	return FormState{
		Values: make(map[string]string),
		Dirty:  make(map[string]bool),
		Valid:  make(map[string]bool),
	}
}

// Get возвращает значение поля ("" если поле не заполнено).
func (s FormState) Get(name string) string {
	return s.Values[name]
}

// Clone возвращает независимую копию состояния.
func (s FormState) Clone() FormState {
	c := NewFormState()
	for k, v := range s.Values {
		c.Values[k] = v
	}
	for k, v := range s.Dirty {
		c.Dirty[k] = v
	}
	for k, v := range s.Valid {
		c.Valid[k] = v
	}
	return c
}

// Snapshot сохраняемый снимок формы: имя поля -> последнее строковое значение.
type Snapshot map[string]string

// ValidationError ошибка проверки поля. Плоская запись без вложенных ошибок,
// чтобы её можно было одинаково отобразить или сериализовать.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
