// Package ui provides the graphical user interface for NordVPN Indicator.
//
// The indicator has no main window. It consists of:
//
//   - A system tray icon and menu (fyne.io/systray) whose icon, labels and
//     item sensitivity follow the polled connection status
//   - Floating GTK4 dialogs for the settings, manual connect and login
//   - Desktop notifications for status information, ratings and failures
//
// # Architecture
//
//   - Application: GTK application lifecycle, held open without windows;
//     owns the tray, the notifier and the housekeeping scheduler
//   - TrayIndicator: menu items, rebuilt in place on every status change
//   - SettingsDialog, ConnectDialog, LoginDialog: GTK4 windows with an OK
//     callback; the work they trigger runs on background goroutines
//   - Notifier: org.freedesktop.Notifications over D-Bus, with notify-send
//     as fallback
//
// # Thread Safety
//
// GTK operations must execute on the main thread. Tray clicks and poller
// callbacks arrive on their own goroutines, so anything touching a widget
// goes through glib.IdleAdd(). The systray API itself may be called from
// any goroutine.
//
// Example:
//
//	go func() {
//	    countries := client.ListCountries(ctx)
//	    glib.IdleAdd(func() {
//	        NewConnectDialog(app, countries, "", onConnect).Show()
//	    })
//	}()
//
// # File Organization
//
//   - app.go: Application lifecycle and the tray actions
//   - tray.go: System tray indicator
//   - icons.go: Icon generation for tray states
//   - dialog.go: Window layout shared by the dialogs
//   - settings_dialog.go, connect_dialog.go, login_dialog.go: Dialogs
//   - form.go: Widget-independent dialog logic
//   - notifications.go: Desktop notification integration
//   - housekeeping.go: Periodic log rotation
//   - styles.go: CSS styling
package ui
