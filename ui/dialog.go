// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains the window layout shared by the indicator's dialogs.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// dialog is a small floating window with a two-column grid and
// Cancel/OK buttons. GTK4 has no blocking run loop for dialogs, so the
// OK handler is a callback; it returns false to keep the window open.
type dialog struct {
	window *gtk.Window
	grid   *gtk.Grid
	row    int
	okBtn  *gtk.Button
}

// newDialog builds the window. onOK runs on the GTK main thread.
func newDialog(title string, width int, onOK func() bool) *dialog {
	d := &dialog{}

	d.window = gtk.NewWindow()
	d.window.SetTitle(title)
	d.window.SetIconName("network-vpn")
	d.window.SetModal(false)
	d.window.SetDefaultSize(width, -1)
	d.window.SetResizable(false)
	d.window.AddCSSClass("nordvpn-dialog")

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	d.grid = gtk.NewGrid()
	d.grid.SetRowSpacing(6)
	d.grid.SetColumnSpacing(12)
	d.grid.SetMarginTop(20)
	d.grid.SetMarginBottom(12)
	d.grid.SetMarginStart(20)
	d.grid.SetMarginEnd(20)
	mainBox.Append(d.grid)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(8)
	buttonBox.SetMarginBottom(20)
	buttonBox.SetMarginStart(20)
	buttonBox.SetMarginEnd(20)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		d.window.Close()
	})
	buttonBox.Append(cancelBtn)

	d.okBtn = gtk.NewButtonWithLabel("OK")
	d.okBtn.AddCSSClass("suggested-action")
	d.okBtn.ConnectClicked(func() {
		if onOK() {
			d.window.Close()
		}
	})
	buttonBox.Append(d.okBtn)

	mainBox.Append(buttonBox)
	d.window.SetChild(mainBox)
	d.window.SetDefaultWidget(d.okBtn)
	return d
}

// addRow appends a labelled widget. An empty label leaves the first
// column blank.
func (d *dialog) addRow(label string, widget gtk.Widgetter) {
	if label != "" {
		l := gtk.NewLabel(label)
		l.SetXAlign(0)
		d.grid.Attach(l, 0, d.row, 1, 1)
	}
	d.grid.Attach(widget, 1, d.row, 1, 1)
	d.row++
}

// addCheck appends a check button spanning the first column.
func (d *dialog) addCheck(label, tooltip string, active bool) *gtk.CheckButton {
	check := gtk.NewCheckButtonWithLabel(label)
	check.SetTooltipText(tooltip)
	check.SetActive(active)
	d.grid.Attach(check, 0, d.row, 1, 1)
	d.row++
	return check
}

// Show displays the dialog.
func (d *dialog) Show() {
	d.window.Show()
}

// newDropDown creates a drop-down showing labels.
func newDropDown(labels []string) *gtk.DropDown {
	dd := gtk.NewDropDown(gtk.NewStringList(labels), nil)
	dd.SetHExpand(true)
	return dd
}

// setDropDownItems replaces the items of dd and selects index.
func setDropDownItems(dd *gtk.DropDown, labels []string, index uint) {
	dd.SetModel(gtk.NewStringList(labels))
	if len(labels) > 0 {
		dd.SetSelected(index)
	}
}
