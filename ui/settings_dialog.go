// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the SettingsDialog for the NordVPN daemon settings.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/vpn"
)

// SettingsDialog edits the autoconnect target, CyberSec, the kill switch,
// the protocol and the technology.
type SettingsDialog struct {
	app       *Application
	dlg       *dialog
	current   vpn.SettingsSnapshot
	countries []nordvpn.CountryRecord

	countryValues []string
	serverValues  []string
	serverGen     int

	autoconnectCheck *gtk.CheckButton
	countryDrop      *gtk.DropDown
	serverDrop       *gtk.DropDown
	cybersecCheck    *gtk.CheckButton
	killswitchCheck  *gtk.CheckButton
	protocolDrop     *gtk.DropDown
	nordlynxCheck    *gtk.CheckButton
}

// NewSettingsDialog creates the dialog for current. countries fills the
// autoconnect country list. Must be called on the GTK main thread.
func NewSettingsDialog(app *Application, current vpn.SettingsSnapshot, countries []nordvpn.CountryRecord) *SettingsDialog {
	sd := &SettingsDialog{
		app:           app,
		current:       current,
		countries:     countries,
		countryValues: countryNames(countries, true),
		serverValues:  []string{""},
	}
	sd.build()
	return sd
}

func (sd *SettingsDialog) build() {
	form := formFromSnapshot(sd.current, sd.countries)
	sd.dlg = newDialog("NordVPN Settings", 400, sd.save)

	sd.autoconnectCheck = gtk.NewCheckButtonWithLabel("Auto Connect")
	sd.autoconnectCheck.SetTooltipText("Automatically connect to NordVPN on login.\n" +
		"You can optionally select a country or a recommended server.")
	sd.autoconnectCheck.SetActive(form.Autoconnect)
	sd.countryDrop = newDropDown(displayLabels(sd.countryValues))
	sd.dlg.grid.Attach(sd.autoconnectCheck, 0, sd.dlg.row, 1, 1)
	sd.dlg.grid.Attach(sd.countryDrop, 1, sd.dlg.row, 1, 1)
	sd.dlg.row++

	sd.serverDrop = newDropDown(sd.serverValues)
	sd.dlg.addRow("", sd.serverDrop)

	sd.cybersecCheck = sd.dlg.addCheck("Cyber Security",
		"Automatically block suspicious websites\nand block advertisements.", form.Cybersec)
	sd.killswitchCheck = sd.dlg.addCheck("Kill Switch",
		"Disable system-wide internet access\nif the VPN connection suddenly disconnects.", form.Killswitch)

	// The daemon hides the protocol while NordLynx is the technology.
	if sd.current.ProtocolExposed() {
		sd.protocolDrop = newDropDown(protocols)
		if i, ok := indexOf(protocols, form.Protocol); ok {
			sd.protocolDrop.SetSelected(i)
		}
		sd.dlg.addRow("Protocol", sd.protocolDrop)
	}

	if sd.current.NordlynxAvailable {
		sd.nordlynxCheck = sd.dlg.addCheck("NordLynx",
			"Use NordLynx instead of OpenVPN.\nDeselect to use the default OpenVPN.", form.Nordlynx)
	}

	logsBtn := gtk.NewButtonWithLabel("View Logs")
	logsBtn.SetHExpand(true)
	logsBtn.ConnectClicked(sd.app.ViewLogs)
	sd.dlg.addRow("Logs", logsBtn)

	if i, ok := indexOf(sd.countryValues, form.Country); ok {
		sd.countryDrop.SetSelected(i)
		sd.loadServers(form.Country, form.Server)
	}
	sd.countryDrop.NotifyProperty("selected", func() {
		sd.loadServers(valueAt(sd.countryValues, sd.countryDrop.Selected()), "")
	})
	sd.autoconnectCheck.ConnectToggled(sd.onAutoconnectToggled)
	sd.setTargetSensitive(form.Autoconnect)
}

// onAutoconnectToggled restores the saved target when autoconnect is
// switched on and clears it when switched off.
func (sd *SettingsDialog) onAutoconnectToggled() {
	active := sd.autoconnectCheck.Active()
	if active {
		form := formFromSnapshot(vpn.SettingsSnapshot{
			Autoconnect: true,
			Country:     sd.current.Country,
			Server:      sd.current.Server,
		}, sd.countries)
		if i, ok := indexOf(sd.countryValues, form.Country); ok {
			sd.countryDrop.SetSelected(i)
			sd.loadServers(form.Country, form.Server)
		}
	} else {
		sd.countryDrop.SetSelected(0)
		sd.loadServers("", "")
	}
	sd.setTargetSensitive(active)
}

func (sd *SettingsDialog) setTargetSensitive(sensitive bool) {
	sd.countryDrop.SetSensitive(sensitive)
	sd.serverDrop.SetSensitive(sensitive && len(sd.serverValues) > 1)
}

// loadServers fetches the recommended servers of country in the background
// and selects preselect once they arrive. Answers for a country that is no
// longer selected are dropped.
func (sd *SettingsDialog) loadServers(country, preselect string) {
	sd.serverGen++
	gen := sd.serverGen

	sd.serverValues = []string{""}
	setDropDownItems(sd.serverDrop, sd.serverValues, 0)
	sd.serverDrop.SetSensitive(false)
	if country == "" {
		return
	}

	id := nordvpn.CountryID(sd.countries, country)
	go func() {
		servers := sd.app.client.ListRecommendedServers(sd.app.ctx, id)
		glib.IdleAdd(func() {
			if gen != sd.serverGen {
				return
			}
			sd.serverValues = append([]string{""}, servers...)
			index, _ := indexOf(sd.serverValues, preselect)
			setDropDownItems(sd.serverDrop, sd.serverValues, index)
			sd.setTargetSensitive(sd.autoconnectCheck.Active())
		})
	}()
}

// form reads the widgets.
func (sd *SettingsDialog) form() settingsForm {
	f := settingsForm{
		Autoconnect: sd.autoconnectCheck.Active(),
		Country:     valueAt(sd.countryValues, sd.countryDrop.Selected()),
		Server:      valueAt(sd.serverValues, sd.serverDrop.Selected()),
		Cybersec:    sd.cybersecCheck.Active(),
		Killswitch:  sd.killswitchCheck.Active(),
	}
	if sd.protocolDrop != nil {
		f.Protocol = valueAt(protocols, sd.protocolDrop.Selected())
	}
	if sd.nordlynxCheck != nil {
		f.Nordlynx = sd.nordlynxCheck.Active()
	}
	return f
}

// save starts the reconciliation off the main thread.
func (sd *SettingsDialog) save() bool {
	desired := sd.form().desired(sd.current)
	if desired == sd.current {
		common.LogDebug("Settings dialog closed without changes")
		return true
	}
	sd.app.ApplySettings(desired)
	return true
}

// Show displays the settings dialog.
func (sd *SettingsDialog) Show() {
	sd.dlg.Show()
}
