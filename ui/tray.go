// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the system tray indicator functionality.
package ui

import (
	"fmt"
	"sync"

	"fyne.io/systray"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/vpn"
)

// Menu labels.
const (
	labelOrder         = "Get a NordVPN account"
	labelQuickConnect  = "Quick connect"
	labelDisconnect    = "Disconnect"
	labelManualConnect = "Manual connect"
	labelRate          = "Rate last connection"
	labelStatus        = "Status Information"
	labelSettings      = "Settings"
	labelQuit          = "Quit"
)

// menuState is the label and sensitivity of the tray items for one status.
type menuState struct {
	ConnectLabel  string
	QuickConnect  bool
	ManualConnect bool
	Rate          bool
	Status        bool
	Settings      bool
}

// menuStateFor returns the menu of a status. While a change is in progress,
// or without internet, only Quit and the order item stay usable.
func menuStateFor(status vpn.ConnectionStatus) menuState {
	switch status {
	case vpn.StatusConnected:
		return menuState{ConnectLabel: labelDisconnect, QuickConnect: true, Status: true, Settings: true}
	case vpn.StatusDisconnected:
		return menuState{ConnectLabel: labelQuickConnect, QuickConnect: true, ManualConnect: true, Rate: true, Status: true}
	default:
		return menuState{ConnectLabel: labelQuickConnect}
	}
}

// tooltipFor returns the tray tooltip of a status.
func tooltipFor(status vpn.ConnectionStatus) string {
	return fmt.Sprintf("%s - %s", common.AppName, status)
}

// TrayIndicator manages the system tray icon and menu.
type TrayIndicator struct {
	app *Application

	mu         sync.Mutex
	ready      bool
	status     vpn.ConnectionStatus
	hasAccount bool

	orderItem    *systray.MenuItem
	quickItem    *systray.MenuItem
	manualItem   *systray.MenuItem
	rateItem     *systray.MenuItem
	statusItem   *systray.MenuItem
	settingsItem *systray.MenuItem
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{
		app:        app,
		status:     vpn.StatusUnknown,
		hasAccount: true,
	}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetTitle(common.AppName)

	t.orderItem = systray.AddMenuItem(labelOrder, "Open the NordVPN order page")
	t.orderItem.Hide()
	t.onClick(t.orderItem, t.app.OpenOrderPage)

	t.quickItem = systray.AddMenuItem(labelQuickConnect, "Connect or disconnect")
	t.onClick(t.quickItem, t.app.QuickConnect)

	t.manualItem = systray.AddMenuItem(labelManualConnect, "Choose a country or server")
	t.onClick(t.manualItem, t.app.ManualConnect)

	t.rateItem = systray.AddMenuItem(labelRate, "Rate the last connection")
	for score := common.MinRating; score <= common.MaxRating; score++ {
		title := fmt.Sprintf("%d", score)
		switch score {
		case common.MinRating:
			title += " (poor)"
		case common.MaxRating:
			title += " (excellent)"
		}
		item := t.rateItem.AddSubMenuItem(title, "")
		s := score
		t.onClick(item, func() { t.app.Rate(s) })
	}

	t.statusItem = systray.AddMenuItem(labelStatus, "Show the connection details")
	t.onClick(t.statusItem, t.app.ShowStatus)

	t.settingsItem = systray.AddMenuItem(labelSettings, "Change the NordVPN settings")
	t.onClick(t.settingsItem, t.app.ShowSettings)

	systray.AddSeparator()

	quitItem := systray.AddMenuItem(labelQuit, "Close "+common.AppName)
	t.onClick(quitItem, t.app.Quit)

	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()
	t.apply()
}

// onClick runs action for every click on item.
func (t *TrayIndicator) onClick(item *systray.MenuItem, action func()) {
	go func() {
		for range item.ClickedCh {
			action()
		}
	}()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// SetStatus updates the icon and the menu for status.
func (t *TrayIndicator) SetStatus(status vpn.ConnectionStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
	t.apply()
}

// SetHasAccount shows the order item when the user has no account.
func (t *TrayIndicator) SetHasAccount(hasAccount bool) {
	t.mu.Lock()
	t.hasAccount = hasAccount
	t.mu.Unlock()
	t.apply()
}

// apply renders the current state. Calls before onReady are kept for it.
func (t *TrayIndicator) apply() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return
	}

	systray.SetIcon(iconFor(t.status))
	systray.SetTooltip(tooltipFor(t.status))

	if t.hasAccount {
		t.orderItem.Hide()
	} else {
		t.orderItem.Show()
	}

	state := menuStateFor(t.status)
	t.quickItem.SetTitle(state.ConnectLabel)
	setEnabled(t.quickItem, state.QuickConnect)
	setEnabled(t.manualItem, state.ManualConnect)
	setEnabled(t.rateItem, state.Rate)
	setEnabled(t.statusItem, state.Status)
	setEnabled(t.settingsItem, state.Settings)
}

func setEnabled(item *systray.MenuItem, enabled bool) {
	if enabled {
		item.Enable()
	} else {
		item.Disable()
	}
}
