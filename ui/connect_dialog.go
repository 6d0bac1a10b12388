// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the manual connect dialog.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/nordvpn-indicator/nordvpn"
)

// ConnectDialog lets the user pick a country and optionally one of its
// recommended servers.
type ConnectDialog struct {
	app       *Application
	dlg       *dialog
	countries []nordvpn.CountryRecord
	onConnect func(country, server string)

	countryValues []string
	serverValues  []string
	serverGen     int

	countryDrop *gtk.DropDown
	serverDrop  *gtk.DropDown
}

// NewConnectDialog creates the dialog with recommended preselected.
// onConnect runs on the GTK main thread after OK.
func NewConnectDialog(app *Application, countries []nordvpn.CountryRecord, recommended string, onConnect func(country, server string)) *ConnectDialog {
	cd := &ConnectDialog{
		app:           app,
		countries:     countries,
		onConnect:     onConnect,
		countryValues: countryNames(countries, false),
		serverValues:  []string{""},
	}

	cd.dlg = newDialog("NordVPN Connect", 400, cd.connect)
	cd.countryDrop = newDropDown(displayLabels(cd.countryValues))
	cd.dlg.addRow("Country", cd.countryDrop)
	cd.serverDrop = newDropDown(cd.serverValues)
	cd.serverDrop.SetSensitive(false)
	cd.dlg.addRow("Server", cd.serverDrop)

	index, _ := indexOf(cd.countryValues, recommended)
	cd.countryDrop.SetSelected(index)
	cd.loadServers(valueAt(cd.countryValues, index))
	cd.countryDrop.NotifyProperty("selected", func() {
		cd.loadServers(valueAt(cd.countryValues, cd.countryDrop.Selected()))
	})
	return cd
}

// loadServers fetches the recommended servers of country in the background.
// The blank entry stays selected so the daemon picks the server.
func (cd *ConnectDialog) loadServers(country string) {
	cd.serverGen++
	gen := cd.serverGen

	cd.serverValues = []string{""}
	setDropDownItems(cd.serverDrop, cd.serverValues, 0)
	cd.serverDrop.SetSensitive(false)
	if country == "" {
		return
	}

	id := nordvpn.CountryID(cd.countries, country)
	go func() {
		servers := cd.app.client.ListRecommendedServers(cd.app.ctx, id)
		glib.IdleAdd(func() {
			if gen != cd.serverGen {
				return
			}
			cd.serverValues = append([]string{""}, servers...)
			setDropDownItems(cd.serverDrop, cd.serverValues, 0)
			cd.serverDrop.SetSensitive(len(servers) > 0)
		})
	}()
}

func (cd *ConnectDialog) connect() bool {
	country := valueAt(cd.countryValues, cd.countryDrop.Selected())
	server := valueAt(cd.serverValues, cd.serverDrop.Selected())
	if country == "" && server == "" {
		return false
	}
	cd.onConnect(country, server)
	return true
}

// Show displays the connect dialog.
func (cd *ConnectDialog) Show() {
	cd.dlg.Show()
}
