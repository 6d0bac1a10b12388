// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the desktop notification system.
package ui

import (
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/nordvpn-indicator/common"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications.Notify"
)

// Icons used by the indicator's notifications.
const (
	IconInfo    = "dialog-information"
	IconOK      = "dialog-ok"
	IconWarning = "dialog-warning"
	IconError   = "dialog-error"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// urgency returns the freedesktop urgency level and its notify-send name.
func (t NotificationType) urgency() (byte, string) {
	switch t {
	case NotificationError:
		return 2, "critical"
	case NotificationWarning:
		return 1, "normal"
	default:
		return 0, "low"
	}
}

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// Notifier sends desktop notifications over the session bus, falling back
// to notify-send when the bus isn't reachable.
//
// Failures are only reported when enabled; information the user asked for
// (status, rating) is always shown.
type Notifier struct {
	enabled bool

	mu   sync.Mutex
	conn *dbus.Conn
}

var _ common.Notifier = (*Notifier)(nil)

// NewNotifier connects to the session bus.
func NewNotifier(enabled bool) *Notifier {
	n := &Notifier{enabled: enabled}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		common.LogWarn("Session bus unavailable, using notify-send: %v", err)
		return n
	}
	n.conn = conn
	return n
}

// Notify sends an informational notification.
func (n *Notifier) Notify(title, message string) error {
	return n.Show(Notification{Title: title, Message: message, Type: NotificationInfo, Icon: IconInfo})
}

// NotifyWithIcon sends an informational notification with a custom icon.
func (n *Notifier) NotifyWithIcon(title, message, icon string) error {
	return n.Show(Notification{Title: title, Message: message, Type: NotificationInfo, Icon: icon})
}

// Failure reports a failed action, unless notifications are disabled.
func (n *Notifier) Failure(title, message string) {
	common.LogError("%s: %s", title, message)
	if !n.enabled {
		return
	}
	if err := n.Show(Notification{Title: title, Message: message, Type: NotificationError, Icon: IconError}); err != nil {
		common.LogWarn("Error showing notification: %v", err)
	}
}

// Show displays n.
func (n *Notifier) Show(nt Notification) error {
	if nt.Icon == "" {
		nt.Icon = IconInfo
	}
	level, name := nt.Type.urgency()

	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()

	if conn != nil {
		obj := conn.Object(notifyService, dbus.ObjectPath(notifyPath))
		call := obj.Call(notifyInterface, 0,
			common.AppName,
			uint32(0),
			nt.Icon,
			nt.Title,
			nt.Message,
			[]string{},
			map[string]dbus.Variant{"urgency": dbus.MakeVariant(level)},
			int32(-1),
		)
		if call.Err == nil {
			return nil
		}
		common.LogWarn("D-Bus notification failed, using notify-send: %v", call.Err)
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+nt.Icon,
		"--urgency="+name,
		nt.Title,
		nt.Message,
	)
	if err := cmd.Run(); err != nil {
		return common.WrapError(err, "notify-send failed")
	}
	return nil
}

// Close closes the session bus connection.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}
