// Package ui provides desktop notification support.
package ui

import (
	"fyne.io/fyne/v2"
)

// NotificationManager handles desktop notifications.
type NotificationManager struct {
	app     fyne.App
	enabled bool
}

// NewNotificationManager creates a new notification manager.
func NewNotificationManager(a fyne.App, enabled bool) *NotificationManager {
	return &NotificationManager{
		app:     a,
		enabled: enabled,
	}
}

// SetEnabled enables or disables notifications.
func (nm *NotificationManager) SetEnabled(enabled bool) {
	nm.enabled = enabled
}

// Enabled reports whether notifications are sent.
func (nm *NotificationManager) Enabled() bool {
	return nm.enabled
}

// Notify sends a desktop notification.
func (nm *NotificationManager) Notify(title, message string) {
	if !nm.enabled {
		return
	}
	nm.app.SendNotification(fyne.NewNotification(title, message))
}

// NotifyRunningInBackground tells the user the app is still running with
// no window shown.
func (nm *NotificationManager) NotifyRunningInBackground() {
	nm.Notify("Packet is running in the background",
		"Use the tray icon or launch Packet again to open it.")
}
