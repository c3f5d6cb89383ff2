package ports

import (
	"context"
	"net/url"

	"vehicletax/internal/domain/models"
)

// Calculator внешний расчётный сервис.
// Ошибка возвращается только при сбое транспорта (нет ответа, не-JSON, не-2xx без тела).
// Бизнес-отказ сервера приходит как ответ с Success=false.
type Calculator interface {
	Calculate(ctx context.Context, form url.Values) (*models.CalculationResponse, error)
}
