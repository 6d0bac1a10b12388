// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the login dialog shown when an action needs an account.
package ui

import (
	"strings"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// LoginDialog asks for a NordVPN access token.
type LoginDialog struct {
	app        *Application
	dlg        *dialog
	tokenEntry *gtk.PasswordEntry
	rememberCk *gtk.CheckButton
	errorLabel *gtk.Label
	onLoggedIn func()
	busy       bool
}

// NewLoginDialog creates the dialog. onLoggedIn runs in a background
// goroutine after a successful login.
func NewLoginDialog(app *Application, onLoggedIn func()) *LoginDialog {
	ld := &LoginDialog{app: app, onLoggedIn: onLoggedIn}

	ld.dlg = newDialog("NordVPN Login", 380, ld.login)

	info := gtk.NewLabel("Generate an access token in your Nord Account\n" +
		"dashboard and paste it below.")
	info.SetXAlign(0)
	info.AddCSSClass("dim-label")
	ld.dlg.grid.Attach(info, 0, ld.dlg.row, 2, 1)
	ld.dlg.row++

	ld.tokenEntry = gtk.NewPasswordEntry()
	ld.tokenEntry.SetShowPeekIcon(true)
	ld.tokenEntry.SetHExpand(true)
	ld.tokenEntry.ConnectActivate(func() {
		ld.dlg.okBtn.Activate()
	})
	ld.dlg.addRow("Token", ld.tokenEntry)

	ld.rememberCk = gtk.NewCheckButtonWithLabel("Remember token")
	ld.rememberCk.SetTooltipText("Store the token in the system keyring\nto log in again automatically.")
	ld.dlg.addRow("", ld.rememberCk)

	ld.errorLabel = gtk.NewLabel("")
	ld.errorLabel.SetXAlign(0)
	ld.errorLabel.SetWrap(true)
	ld.errorLabel.AddCSSClass("error")
	ld.errorLabel.Hide()
	ld.dlg.grid.Attach(ld.errorLabel, 0, ld.dlg.row, 2, 1)
	ld.dlg.row++

	return ld
}

// login runs the login in the background. The dialog stays open until it
// succeeds so a mistyped token can be corrected.
func (ld *LoginDialog) login() bool {
	if ld.busy {
		return false
	}
	token := strings.TrimSpace(ld.tokenEntry.Text())
	if token == "" {
		ld.showError("An access token is required.")
		return false
	}

	ld.busy = true
	ld.dlg.okBtn.SetSensitive(false)
	remember := ld.rememberCk.Active()

	go func() {
		err := ld.app.manager.Login(ld.app.ctx, token, remember)
		glib.IdleAdd(func() {
			ld.busy = false
			ld.dlg.okBtn.SetSensitive(true)
			if err != nil {
				ld.showError(err.Error())
				return
			}
			ld.dlg.window.Close()
			go ld.onLoggedIn()
		})
	}()
	return false
}

func (ld *LoginDialog) showError(msg string) {
	ld.errorLabel.SetText(msg)
	ld.errorLabel.Show()
}

// Show displays the login dialog.
func (ld *LoginDialog) Show() {
	ld.dlg.Show()
	ld.tokenEntry.GrabFocus()
}
