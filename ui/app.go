package ui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/config"
	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/vpn"
)

// Notification titles.
const (
	titleNotLoggedIn = "Not logged into NordVPN."
	titleSettings    = "NordVPN Settings"
	titleConnect     = "NordVPN Connect"
	titleOrder       = "NordVPN Order"
	titleLogs        = "NordVPN Logs"
)

// Application represents the tray application. It has no main window; GTK
// only hosts the dialogs, and the tray runs next to it.
type Application struct {
	app      *gtk.Application
	config   *config.Config
	client   *nordvpn.Client
	manager  *vpn.Manager
	version  string
	tray     *TrayIndicator
	notifier *Notifier
	chores   *housekeeping

	ctx    context.Context
	cancel context.CancelFunc

	// changing is set while a connect or disconnect runs.
	changing atomic.Bool
}

// NewApplication creates a new application. Cancelling ctx quits it.
func NewApplication(ctx context.Context, cfg *config.Config, client *nordvpn.Client, manager *vpn.Manager, version string) *Application {
	app := gtk.NewApplication(common.ApplicationID, gio.ApplicationFlagsNone)

	ctx, cancel := context.WithCancel(ctx)
	application := &Application{
		app:     app,
		config:  cfg,
		client:  client,
		manager: manager,
		version: version,
		ctx:     ctx,
		cancel:  cancel,
	}

	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(application.onShutdown)

	go func() {
		<-ctx.Done()
		glib.IdleAdd(application.app.Quit)
	}()

	return application
}

// Run runs the application until Quit and returns its exit code.
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.tray != nil {
		return
	}
	// Keep running without any window open.
	a.app.Hold()
	gtk.WindowSetDefaultIconName("network-vpn")
	LoadStyles()

	a.notifier = NewNotifier(a.config.ShowNotifications)
	a.tray = NewTrayIndicator(a)

	a.manager.Poller().SetOnStatusChange(a.onStatusChange)
	a.manager.SetOnSettingsApplied(a.onSettingsApplied)
	a.manager.Watcher().SetOnChange(func(name string) {
		common.LogDebug("Marker file %s changed", name)
	})

	chores, err := startHousekeeping(common.RotationCheckInterval, common.GetLogger().CheckRotation)
	if err != nil {
		common.LogWarn("Housekeeping unavailable: %v", err)
	}
	a.chores = chores

	go a.tray.Run()
	go func() {
		a.tray.SetHasAccount(a.manager.HasAccount(a.ctx))
		a.manager.Start(a.ctx)
	}()

	common.LogInfo("%s %s started", common.AppName, a.version)
}

// onShutdown stops the background work before GTK exits.
func (a *Application) onShutdown() {
	a.cancel()
	a.manager.Stop()
	a.chores.Stop()
	if a.notifier != nil {
		a.notifier.Close()
	}
	common.LogInfo("%s stopped", common.AppName)
}

// Quit closes the tray and the application.
func (a *Application) Quit() {
	systray.Quit()
	glib.IdleAdd(a.app.Quit)
}

// onStatusChange runs on the poller goroutine.
func (a *Application) onStatusChange(status vpn.ConnectionStatus) {
	common.LogInfo("Connection status: %s", status)
	a.tray.SetStatus(status)
	if !status.Busy() {
		a.tray.SetHasAccount(a.manager.HasAccount(a.ctx))
	}
}

// onSettingsApplied runs after a reconciliation the settings dialog started.
func (a *Application) onSettingsApplied(changed bool) {
	if changed {
		return
	}
	a.notifier.Failure(titleSettings, "No setting could be applied. "+common.SupportMessage)
}

// QuickConnect connects, letting the daemon choose the server, or
// disconnects when connected.
func (a *Application) QuickConnect() {
	a.changeConnection(vpn.ConnectionRequest{Quick: true})
}

// ManualConnect loads the countries and shows the connect dialog.
func (a *Application) ManualConnect() {
	go func() {
		countries := a.client.ListCountries(a.ctx)
		if len(countries) == 0 {
			a.notifier.Failure(titleConnect, "Could not load the country list. Check your internet connection.")
			return
		}
		recommended := a.client.RecommendedCountry(a.ctx)
		glib.IdleAdd(func() {
			NewConnectDialog(a, countries, recommended, func(country, server string) {
				a.changeConnection(vpn.ConnectionRequest{Country: country, Server: server})
			}).Show()
		})
	}()
}

// changeConnection logs in first when needed, then runs the change in the
// background.
func (a *Application) changeConnection(req vpn.ConnectionRequest) {
	go func() {
		err := a.manager.EnsureLoggedIn(a.ctx)
		switch {
		case errors.Is(err, vpn.ErrNotLoggedIn):
			glib.IdleAdd(func() {
				NewLoginDialog(a, func() { a.runChange(req) }).Show()
			})
		case err != nil:
			a.notifier.Failure(titleNotLoggedIn, err.Error())
		default:
			a.runChange(req)
		}
	}()
}

func (a *Application) runChange(req vpn.ConnectionRequest) {
	if !a.changing.CompareAndSwap(false, true) {
		common.LogWarn("A connection change is already running")
		return
	}
	defer a.changing.Store(false)

	out := a.manager.ChangeConnection(a.ctx, req)
	if !out.Result.OK() {
		a.notifier.Failure(out.FailureTitle(), out.FailureMessage())
	}
}

// Rate rates the last connection and shows the answer.
func (a *Application) Rate(score int) {
	go func() {
		res := a.manager.Rate(a.ctx, score)
		msg, icon, kind := res.Message, IconOK, NotificationSuccess
		if !res.OK() {
			icon, kind = IconError, NotificationError
			if msg == "" {
				msg = common.SupportMessage
			}
		}
		a.show(Notification{Title: labelRate, Message: msg, Type: kind, Icon: icon})
	}()
}

// ShowStatus shows the account expiry and the connection details.
func (a *Application) ShowStatus() {
	go func() {
		text, ok := a.manager.StatusReport(a.ctx)
		nt := Notification{Title: labelStatus, Message: text, Type: NotificationInfo, Icon: IconInfo}
		switch {
		case !ok:
			nt.Type, nt.Icon = NotificationError, IconError
		case strings.Contains(text, "Disconnected"):
			nt.Type, nt.Icon = NotificationWarning, IconWarning
		}
		a.show(nt)
	}()
}

// ShowSettings reads the settings and countries, then opens the dialog.
func (a *Application) ShowSettings() {
	go func() {
		current, err := a.manager.Store().Load(a.ctx, false)
		if err != nil {
			a.notifier.Failure(titleSettings, "Could not read the NordVPN settings: "+err.Error())
			return
		}
		countries := a.client.ListCountries(a.ctx)
		glib.IdleAdd(func() {
			NewSettingsDialog(a, current, countries).Show()
		})
	}()
}

// ApplySettings reconciles the daemon with desired in the background.
func (a *Application) ApplySettings(desired vpn.SettingsSnapshot) {
	go a.manager.ApplySettings(a.ctx, desired)
}

// OpenOrderPage opens the configured order link.
func (a *Application) OpenOrderPage() {
	if err := common.OpenURI(a.config.OrderLink); err != nil {
		a.notifier.Failure(titleOrder, err.Error())
	}
}

// ViewLogs opens the daemon log and the indicator log, if they exist.
func (a *Application) ViewLogs() {
	opened := 0
	for _, path := range []string{common.DaemonLogPath, common.GetLogger().LogFilePath()} {
		if path == "" || !common.FileExists(path) {
			continue
		}
		if err := common.OpenURI(path); err != nil {
			common.LogWarn("Could not open %s: %v", path, err)
			continue
		}
		opened++
	}
	if opened == 0 {
		a.notifier.Failure(titleLogs, "No log file found.")
	}
}

func (a *Application) show(nt Notification) {
	if err := a.notifier.Show(nt); err != nil {
		common.LogWarn("Error showing notification: %v", err)
	}
}
