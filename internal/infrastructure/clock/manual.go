package clock

import (
	"sort"
	"sync"
	"time"

	"vehicletax/internal/domain/ports"
)

// ManualScheduler планировщик с ручным управлением временем.
// Задачи выполняются только внутри Advance, в порядке срока срабатывания.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewManualScheduler создает планировщик с нулевым временем.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc регистрирует задачу через d от текущего виртуального времени.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance сдвигает время на d и выполняет все созревшие задачи.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		f := next.f
		s.mu.Unlock()

		// Вызов вне мьютекса: задача может планировать новые таймеры
		f()
	}
}

// Pending возвращает количество активных (не остановленных и не сработавших) задач.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
