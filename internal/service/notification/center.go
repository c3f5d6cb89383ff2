// Package notification управляет единственным видимым уведомлением формы.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/domain/ports"
)

// DefaultSuccessDelay время показа уведомления об успехе.
const DefaultSuccessDelay = 5 * time.Second

// Handle идентифицирует выданное уведомление.
type Handle struct {
	ID string
}

// Center показывает не более одного уведомления. Новое уведомление заменяет предыдущее
// и отменяет его таймер автоскрытия. Успешные уведомления скрываются сами,
// предупреждения и ошибки остаются до явного закрытия.
type Center struct {
	mu           sync.Mutex
	scheduler    ports.Scheduler
	successDelay time.Duration
	current      *models.Notification
	timer        ports.Timer
	onChange     func(*models.Notification)
}

// NewCenter создает центр уведомлений. successDelay <= 0 означает значение по умолчанию.
func NewCenter(scheduler ports.Scheduler, successDelay time.Duration) *Center {
	if successDelay <= 0 {
		successDelay = DefaultSuccessDelay
	}
	return &Center{scheduler: scheduler, successDelay: successDelay}
}

// SetOnChange устанавливает callback, вызываемый при каждом показе или скрытии.
// В callback передаётся копия текущего уведомления или nil.
func (c *Center) SetOnChange(callback func(*models.Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = callback
}

// Notify показывает уведомление, заменяя текущее.
func (c *Center) Notify(kind models.NotificationKind, message string) Handle {
	n := &models.Notification{ID: uuid.NewString(), Kind: kind, Message: message}

	c.mu.Lock()
	c.stopTimerLocked()
	c.current = n
	if kind == models.NotifySuccess {
		id := n.ID
		c.timer = c.scheduler.AfterFunc(c.successDelay, func() {
			c.Dismiss(Handle{ID: id})
		})
	}
	cb, snapshot := c.onChange, c.snapshotLocked()
	c.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return Handle{ID: n.ID}
}

// Dismiss скрывает уведомление, если оно всё ещё текущее. Устаревшие handle игнорируются.
func (c *Center) Dismiss(h Handle) bool {
	c.mu.Lock()
	if c.current == nil || c.current.ID != h.ID {
		c.mu.Unlock()
		return false
	}
	c.stopTimerLocked()
	c.current = nil
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(nil)
	}
	return true
}

// Clear скрывает текущее уведомление независимо от handle.
func (c *Center) Clear() {
	c.mu.Lock()
	had := c.current != nil
	c.stopTimerLocked()
	c.current = nil
	cb := c.onChange
	c.mu.Unlock()

	if had && cb != nil {
		cb(nil)
	}
}

// Current возвращает копию видимого уведомления.
func (c *Center) Current() (models.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return models.Notification{}, false
	}
	return *c.current, true
}

func (c *Center) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Center) snapshotLocked() *models.Notification {
	if c.current == nil {
		return nil
	}
	n := *c.current
	return &n
}
