package ports

import "time"

// Timer отменяемая отложенная задача.
type Timer interface {
	Stop() bool
}

// Scheduler планирует отложенные вызовы (debounce валидации, автоскрытие уведомлений).
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
