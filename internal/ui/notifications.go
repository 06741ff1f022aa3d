package ui

import (
	"log"
)

// NotificationLevel classifies admin notifications so spammy info-level
// messages can be suppressed without hiding errors.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelWarn
	LevelError
)

// NotificationManager handles showing desktop notifications across platforms.
type NotificationManager struct {
	useNotifications bool
	appName          string
	embeddedIcon     []byte
}

// NewNotificationManager creates a new notification manager.
func NewNotificationManager(useNotifications bool, appName string, embeddedIcon []byte) *NotificationManager {
	return &NotificationManager{
		useNotifications: useNotifications,
		appName:          appName,
		embeddedIcon:     embeddedIcon,
	}
}

// ShowNotification displays a desktop notification if enabled.
func (n *NotificationManager) ShowNotification(title, message string) {
	if !n.useNotifications {
		return
	}
	if err := n.platformNotify(title, message); err != nil {
		log.Printf("Error showing notification: %v", err)
	}
}

var globalNotificationManager *NotificationManager

// InitGlobalNotifications initializes the global notification manager used
// by the convenience functions below.
func InitGlobalNotifications(useNotifications bool, appName string, embeddedIcon []byte) {
	globalNotificationManager = NewNotificationManager(useNotifications, appName, embeddedIcon)
}

// ShowNotification is a convenience function for showing notifications
// without directly referencing the notification manager.
func ShowNotification(title, message string) {
	if globalNotificationManager != nil {
		globalNotificationManager.ShowNotification(title, message)
	} else {
		log.Printf("Notification not shown (manager not initialized): %s - %s", title, message)
	}
}

// ShowAdminNotification shows operational notifications. Warnings and
// errors always surface; info-level messages respect the user's
// notification toggle.
func ShowAdminNotification(level NotificationLevel, title, message string) {
	if globalNotificationManager == nil {
		log.Printf("Admin notification not shown (manager not initialized): %s - %s", title, message)
		return
	}
	if level == LevelInfo {
		globalNotificationManager.ShowNotification(title, message)
		return
	}
	if err := globalNotificationManager.platformNotify(title, message); err != nil {
		log.Printf("Error showing admin notification: %v", err)
	}
}
