package clock

import (
	"time"

	"vehicletax/internal/domain/ports"
)

// RealScheduler планирует вызовы на системных таймерах.
type RealScheduler struct{}

// NewRealScheduler возвращает планировщик на основе time.AfterFunc.
func NewRealScheduler() ports.Scheduler {
	return RealScheduler{}
}

func (RealScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
