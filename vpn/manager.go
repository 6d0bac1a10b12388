// Package vpn provides NordVPN connection management functionality.
// This file contains the Manager type which ties the adapter, the settings
// store, the reconciler and the poller together for the UI and the CLI.
package vpn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/keyring"
	"github.com/yllada/nordvpn-indicator/nordvpn"
)

// Common errors - re-exported from common package for convenience.
var (
	ErrNotLoggedIn      = common.ErrNotLoggedIn
	ErrUserInputInvalid = common.ErrUserInputInvalid
)

// Text shown by StatusReport.
const (
	NotLoggedInText  = "You are not logged into NordVPN.\nPlease, login with: nordvpn login"
	NotConnectedText = "You are not connected to NordVPN."
	reportSeparator  = "─────────────────────────"
)

// Adapter is everything the Manager needs from the NordVPN client.
type Adapter interface {
	Commander
	SettingsSource
	StatusSource
	StatusInfo(ctx context.Context) (string, error)
	Rate(ctx context.Context, score int) nordvpn.Result
	AccountInfo(ctx context.Context) (nordvpn.AccountInfo, error)
	IsLoggedIn(ctx context.Context) bool
	Login(ctx context.Context, token string) nordvpn.Result
	Logout(ctx context.Context) nordvpn.Result
}

// ConnectionRequest describes a connection change.
type ConnectionRequest struct {
	// Country and Server select a target for a manual connect.
	Country string
	Server  string
	// Connect forces the direction; nil toggles based on the current status.
	Connect *bool
	// Quick lets the daemon pick the server.
	Quick bool
}

// ConnectionOutcome is the result of ChangeConnection.
type ConnectionOutcome struct {
	Connect bool
	Target  string
	Result  nordvpn.Result
}

// FailureTitle returns the notification title for a failed change.
func (o ConnectionOutcome) FailureTitle() string {
	if o.Connect {
		return fmt.Sprintf("Failed to connect to %q", o.Target)
	}
	return fmt.Sprintf("Failed to disconnect from %q", o.Target)
}

// FailureMessage returns the adapter output, or a generic support hint.
func (o ConnectionOutcome) FailureMessage() string {
	if o.Result.Message != "" {
		return o.Result.Message
	}
	return common.SupportMessage
}

// Manager orchestrates NordVPN actions.
type Manager struct {
	adapter    Adapter
	store      *SettingsStore
	reconciler *Reconciler
	poller     *Poller
	watcher    *MarkerWatcher

	mu                sync.RWMutex
	onSettingsApplied func(changed bool)
}

// NewManager creates a Manager with marker files in configDir and the given
// poll interval.
func NewManager(adapter Adapter, configDir string, interval time.Duration) *Manager {
	store := NewSettingsStore(adapter, configDir)
	return &Manager{
		adapter:    adapter,
		store:      store,
		reconciler: NewReconciler(adapter, store),
		poller:     NewPoller(adapter, store, interval),
		watcher:    NewMarkerWatcher(store),
	}
}

// Store returns the settings store.
func (m *Manager) Store() *SettingsStore {
	return m.store
}

// Poller returns the status poller.
func (m *Manager) Poller() *Poller {
	return m.poller
}

// Watcher returns the marker file watcher.
func (m *Manager) Watcher() *MarkerWatcher {
	return m.watcher
}

// SetOnSettingsApplied sets a callback for finished ApplySettings calls.
func (m *Manager) SetOnSettingsApplied(callback func(changed bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSettingsApplied = callback
}

// Start loads the settings and starts the watcher and the poller.
func (m *Manager) Start(ctx context.Context) {
	if _, err := m.store.Load(ctx, true); err != nil {
		common.LogWarn("Initial settings load failed: %v", err)
	}
	if err := m.watcher.Start(); err != nil {
		common.LogWarn("Marker watcher unavailable: %v", err)
	}
	m.poller.Start()
}

// Stop stops the poller and the watcher.
func (m *Manager) Stop() {
	m.poller.Stop()
	m.watcher.Stop()
}

// newOpID returns a short id used to correlate the log lines of one action.
func newOpID() string {
	return uuid.NewString()[:8]
}

// IsConnected queries the daemon for a Connected status.
func (m *Manager) IsConnected(ctx context.Context) bool {
	raw, err := m.adapter.QueryStatus(ctx)
	return ClassifyStatus(raw, err) == StatusConnected
}

// HasAccount reports whether the user ever connected or is logged in now.
func (m *Manager) HasAccount(ctx context.Context) bool {
	return m.store.HasAccountMarker() || m.adapter.IsLoggedIn(ctx)
}

// ChangeConnection connects or disconnects. A non-quick connect without a
// country or server falls back to the autoconnect target of the current
// settings, then to the fastest server.
func (m *Manager) ChangeConnection(ctx context.Context, req ConnectionRequest) ConnectionOutcome {
	op := newOpID()

	connect := false
	if req.Connect != nil {
		connect = *req.Connect
	} else {
		connect = !m.IsConnected(ctx)
	}

	var out ConnectionOutcome
	out.Connect = connect

	if connect && !req.Quick {
		country, server := req.Country, req.Server
		if country == "" && server == "" {
			current := m.store.Current()
			country, server = current.Country, current.Server
		}
		out.Target = server
		if out.Target == "" {
			out.Target = country
		}
		if out.Target == "" {
			out.Target = m.adapter.FastestServer(ctx)
		}
	}

	if connect {
		common.LogInfo("[%s] Connecting to %q", op, out.Target)
		out.Result = m.adapter.Connect(ctx, out.Target)
	} else {
		common.LogInfo("[%s] Disconnecting", op)
		out.Result = m.adapter.Disconnect(ctx)
	}

	if out.Result.OK() {
		common.LogInfo("[%s] Done: %s", op, out.Result.Message)
	} else {
		common.LogError("[%s] Failed (%d): %s", op, out.Result.Code, out.Result.Message)
	}
	return out
}

// ApplySettings reconciles the daemon with desired and reloads the settings.
func (m *Manager) ApplySettings(ctx context.Context, desired SettingsSnapshot) bool {
	op := newOpID()
	old := m.store.Current()
	common.LogInfo("[%s] Applying settings", op)

	changed := m.reconciler.Reconcile(ctx, old, desired)
	if changed {
		m.store.MarkChanged()
		if _, err := m.store.Load(ctx, true); err != nil {
			m.store.Replace(desired)
		}
	}
	common.LogInfo("[%s] Settings applied (changed: %v)", op, changed)

	m.mu.RLock()
	callback := m.onSettingsApplied
	m.mu.RUnlock()
	if callback != nil {
		callback(changed)
	}
	return changed
}

// Rate rates the last connection.
func (m *Manager) Rate(ctx context.Context, score int) nordvpn.Result {
	op := newOpID()
	score = nordvpn.ClampRating(score)
	common.LogInfo("[%s] Rating last connection: %d", op, score)
	res := m.adapter.Rate(ctx, score)
	if !res.OK() {
		common.LogError("[%s] Rating failed (%d): %s", op, res.Code, res.Message)
	}
	return res
}

// StatusReport returns the account expiry and the status details while
// connected. ok is false when there is nothing to report.
func (m *Manager) StatusReport(ctx context.Context) (text string, ok bool) {
	if !m.IsConnected(ctx) {
		if !m.adapter.IsLoggedIn(ctx) {
			return NotLoggedInText, false
		}
		return NotConnectedText, false
	}

	info, err := m.adapter.AccountInfo(ctx)
	if err != nil {
		common.LogWarn("Could not read account info: %v", err)
	}
	status, err := m.adapter.StatusInfo(ctx)
	if err != nil {
		return NotConnectedText, false
	}
	return strings.Join([]string{info.ExpiryText, reportSeparator, status}, "\n"), true
}

// Login logs into NordVPN with token and optionally stores it in the keyring.
func (m *Manager) Login(ctx context.Context, token string, remember bool) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: access token is required", ErrUserInputInvalid)
	}

	op := newOpID()
	common.LogInfo("[%s] Logging in", op)
	res := m.adapter.Login(ctx, token)
	if !res.OK() {
		common.LogError("[%s] Login failed (%d): %s", op, res.Code, res.Message)
		if res.Err != nil {
			return fmt.Errorf("%s: %w", res.Message, res.Err)
		}
		return fmt.Errorf("%s: %w", res.Message, common.ErrCommandFailed)
	}

	if remember {
		if err := keyring.Store(token); err != nil && !errors.Is(err, keyring.ErrUnavailable) {
			common.LogWarn("[%s] Could not remember token: %v", op, err)
		}
	}
	m.store.MarkChanged()
	return nil
}

// EnsureLoggedIn logs in with a remembered token when needed.
// It returns ErrNotLoggedIn when the user has to provide a token.
func (m *Manager) EnsureLoggedIn(ctx context.Context) error {
	if m.adapter.IsLoggedIn(ctx) {
		return nil
	}
	token, err := keyring.Get()
	if err != nil {
		return ErrNotLoggedIn
	}
	if err := m.Login(ctx, token, false); err != nil {
		return fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}
	return nil
}

// Logout logs out and, if forget is set, removes the remembered token.
func (m *Manager) Logout(ctx context.Context, forget bool) nordvpn.Result {
	res := m.adapter.Logout(ctx)
	if forget {
		if err := keyring.Delete(); err != nil {
			common.LogWarn("Could not forget token: %v", err)
		}
	}
	m.store.MarkChanged()
	return res
}
