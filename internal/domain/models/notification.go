package models

// NotificationKind тип пользовательского уведомления.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// Notification видимое уведомление.
type Notification struct {
	ID      string
	Kind    NotificationKind
	Message string
}
