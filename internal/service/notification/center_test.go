package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/infrastructure/clock"
)

func TestSuccessAutoDismiss(t *testing.T) {
	sched := clock.NewManualScheduler()
	c := NewCenter(sched, 0)

	var changes []*models.Notification
	c.SetOnChange(func(n *models.Notification) { changes = append(changes, n) })

	c.Notify(models.NotifySuccess, "Calculation completed successfully!")
	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, models.NotifySuccess, n.Kind)

	sched.Advance(4999 * time.Millisecond)
	_, ok = c.Current()
	assert.True(t, ok, "still visible before 5s")

	sched.Advance(time.Millisecond)
	_, ok = c.Current()
	assert.False(t, ok, "dismissed after 5s")

	require.Len(t, changes, 2)
	assert.Nil(t, changes[1])
}

func TestWarningAndErrorPersist(t *testing.T) {
	for _, kind := range []models.NotificationKind{models.NotifyWarning, models.NotifyError} {
		sched := clock.NewManualScheduler()
		c := NewCenter(sched, time.Second)

		h := c.Notify(kind, "problem")
		sched.Advance(time.Hour)

		n, ok := c.Current()
		require.True(t, ok, kind)
		assert.Equal(t, h.ID, n.ID)

		assert.True(t, c.Dismiss(h))
		_, ok = c.Current()
		assert.False(t, ok)
	}
}

func TestNewNotificationSupersedes(t *testing.T) {
	sched := clock.NewManualScheduler()
	c := NewCenter(sched, 5*time.Second)

	first := c.Notify(models.NotifySuccess, "done")
	sched.Advance(3 * time.Second)
	second := c.Notify(models.NotifyError, "Network error. Please try again.")

	assert.Equal(t, 0, sched.Pending(), "pending auto-dismiss must be cancelled")

	// Таймер первого уведомления не должен скрыть второе
	sched.Advance(10 * time.Second)
	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, n.ID)

	assert.False(t, c.Dismiss(first), "superseded handle is a no-op")
	_, ok = c.Current()
	assert.True(t, ok)
}

func TestSuccessAfterSuccessRestartsTimer(t *testing.T) {
	sched := clock.NewManualScheduler()
	c := NewCenter(sched, 5*time.Second)

	c.Notify(models.NotifySuccess, "one")
	sched.Advance(4 * time.Second)
	second := c.Notify(models.NotifySuccess, "two")
	sched.Advance(4 * time.Second)

	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, n.ID)

	sched.Advance(time.Second)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	sched := clock.NewManualScheduler()
	c := NewCenter(sched, time.Second)
	calls := 0
	c.SetOnChange(func(*models.Notification) { calls++ })

	c.Clear()
	assert.Equal(t, 0, calls, "clearing nothing does not notify")

	c.Notify(models.NotifySuccess, "ok")
	c.Clear()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, sched.Pending())
}
