package submission

import (
	"net/url"
	"strings"

	"vehicletax/internal/domain/models"
)

// BuildPayload собирает поля запроса из состояния формы.
// cc_power передаётся только если заполнено. Анти-CSRF токен добавляет транспорт.
func BuildPayload(state models.FormState) url.Values {
	form := url.Values{}
	for _, field := range models.FormFields {
		value := strings.TrimSpace(state.Get(field))
		if field == models.FieldCCPower && value == "" {
			continue
		}
		form.Set(field, value)
	}
	return form
}
