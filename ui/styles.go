// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the CSS for the dialogs.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Theme-aware styles; colors follow the system light/dark scheme.
const appCSS = `
window.nordvpn-dialog grid label {
    min-height: 28px;
}

window.nordvpn-dialog dropdown {
    min-width: 220px;
}

window.nordvpn-dialog label.error {
    color: #e01b24;
    font-size: 0.9em;
}

window.nordvpn-dialog button.suggested-action {
    background-color: #4687ff;
    color: white;
    min-width: 80px;
}

window.nordvpn-dialog button {
    min-width: 80px;
}
`

// LoadStyles loads the dialog CSS for the default display.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
