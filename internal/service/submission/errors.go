package submission

import "errors"

var (
	// ErrInProgress повторная отправка, пока предыдущая не завершилась
	ErrInProgress = errors.New("submission: already in progress")
	// ErrStale ответ пришёл после сброса формы и был отброшен
	ErrStale = errors.New("submission: response discarded after reset")
)

// Сообщения пользователю.
const (
	MsgNetworkError      = "Network error. Please try again."
	MsgCalculationFailed = "Calculation failed."
)
