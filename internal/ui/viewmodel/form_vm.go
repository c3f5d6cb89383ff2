package viewmodel

import (
	"vehicletax/internal/domain/models"
	"vehicletax/internal/ui/report"
)

// Подписи кнопки расчёта.
const (
	SubmitLabel     = "Calculate Tax"
	SubmittingLabel = "Calculating..."
)

// FormViewModel представляет данные формы расчёта налога для UI.
type FormViewModel struct {
	// Значения полей (после форматирования дат)
	Values map[string]string

	// Сообщения об ошибках по полям; отсутствие ключа означает, что маркера нет
	Errors map[string]string

	// Поле объёма/мощности показывается только для категорий с этим признаком
	CCPowerVisible bool

	// Идёт отправка: кнопка расчёта заблокирована
	Loading bool

	// Видимое уведомление (nil если нет)
	Notification *models.Notification

	// Результат последнего успешного расчёта (nil если нет)
	Result *report.DisplayModel

	// Справочники для выпадающих списков
	RegTypes   []models.RegType
	Categories []models.Category
}

// NewFormViewModel создаёт пустую модель формы со справочниками из catalog.
func NewFormViewModel(catalog models.Catalog) *FormViewModel {
	return &FormViewModel{
		Values:     make(map[string]string),
		Errors:     make(map[string]string),
		RegTypes:   catalog.RegTypes,
		Categories: catalog.Categories,
	}
}

// Clone возвращает копию модели, которую можно читать без блокировок.
func (vm *FormViewModel) Clone() FormViewModel {
	c := *vm
	c.Values = make(map[string]string, len(vm.Values))
	for k, v := range vm.Values {
		c.Values[k] = v
	}
	c.Errors = make(map[string]string, len(vm.Errors))
	for k, v := range vm.Errors {
		c.Errors[k] = v
	}
	if vm.Notification != nil {
		n := *vm.Notification
		c.Notification = &n
	}
	return c
}

// ButtonText текст кнопки расчёта с учётом индикатора загрузки.
func (vm FormViewModel) ButtonText() string {
	if vm.Loading {
		return SubmittingLabel
	}
	return SubmitLabel
}

// HasError сообщает, отмечено ли поле как ошибочное.
func (vm FormViewModel) HasError(field string) bool {
	_, ok := vm.Errors[field]
	return ok
}
