package vpn

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yllada/nordvpn-indicator/common"
)

// SettingsSource reads the daemon settings.
type SettingsSource interface {
	QuerySettings(ctx context.Context) (string, error)
	IsWireguardInstalled(ctx context.Context) bool
	UsesNordlynx(ctx context.Context) bool
}

// SettingsStore owns the last-read SettingsSnapshot and the autoconnect
// marker files in the config directory.
type SettingsStore struct {
	mu      sync.RWMutex
	source  SettingsSource
	dir     string
	current SettingsSnapshot
	loaded  bool
	changed atomic.Bool
}

// NewSettingsStore creates a store reading from source, with marker files in dir.
func NewSettingsStore(source SettingsSource, dir string) *SettingsStore {
	return &SettingsStore{
		source: source,
		dir:    dir,
	}
}

// Dir returns the config directory holding the marker files.
func (s *SettingsStore) Dir() string {
	return s.dir
}

// Load returns the current settings. Unless force is set, or something was
// marked changed since the last load, the cached snapshot is returned
// without querying the daemon. On failure the cache is kept and returned
// together with the error.
func (s *SettingsStore) Load(ctx context.Context, force bool) (SettingsSnapshot, error) {
	s.mu.RLock()
	cached, loaded := s.current, s.loaded
	s.mu.RUnlock()

	if loaded && !force && !s.changed.Load() {
		return cached, nil
	}

	raw, err := s.source.QuerySettings(ctx)
	if err != nil {
		common.LogWarn("Could not read NordVPN settings: %v", err)
		return cached, err
	}
	if !strings.Contains(strings.ToLower(raw), "dns") {
		// "You are not logged in." and similar answers
		err := fmt.Errorf("%w: unexpected settings output %q", common.ErrParse, strings.TrimSpace(raw))
		common.LogWarn("Could not read NordVPN settings: %v", err)
		return cached, err
	}

	snap := ParseSettings(raw)
	snap.NordlynxAvailable = s.source.IsWireguardInstalled(ctx)
	if !strings.Contains(strings.ToLower(raw), "technology") {
		// Clients without the setting only report it for the live connection.
		snap.NordlynxActive = s.source.UsesNordlynx(ctx)
	}
	if snap.Autoconnect {
		s.applyMarkers(&snap)
	}

	s.mu.Lock()
	s.current = snap
	s.loaded = true
	s.mu.Unlock()
	s.changed.Store(false)

	common.LogDebug("Settings: %+v", snap)
	return snap, nil
}

// applyMarkers fills the autoconnect target from the marker files.
// Only one file is consulted: server if it exists, else country.
func (s *SettingsStore) applyMarkers(snap *SettingsSnapshot) {
	serverPath := filepath.Join(s.dir, common.ServerMarkerFileName)
	countryPath := filepath.Join(s.dir, common.CountryMarkerFileName)

	if common.FileExists(serverPath) {
		snap.Server = common.ReadMarker(serverPath)
	} else if common.FileExists(countryPath) {
		snap.Country = common.ReadMarker(countryPath)
	}
}

// Current returns the last loaded snapshot without querying the daemon.
func (s *SettingsStore) Current() SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace stores snap as the current snapshot, after a reconciliation.
func (s *SettingsStore) Replace(snap SettingsSnapshot) {
	s.mu.Lock()
	s.current = snap
	s.loaded = true
	s.mu.Unlock()
}

// MarkChanged makes the next Load query the daemon again.
func (s *SettingsStore) MarkChanged() {
	s.changed.Store(true)
}

// Changed reports whether a reload is pending.
func (s *SettingsStore) Changed() bool {
	return s.changed.Load()
}

// SaveTarget persists the autoconnect target. With autoconnect on, the
// winning target (server, else country) is written and the other marker is
// removed; with autoconnect off, or no target, both markers are removed.
func (s *SettingsStore) SaveTarget(autoconnect bool, server, country string) error {
	serverPath := filepath.Join(s.dir, common.ServerMarkerFileName)
	countryPath := filepath.Join(s.dir, common.CountryMarkerFileName)

	if !autoconnect {
		server, country = "", ""
	}
	if server != "" {
		country = ""
	}

	if err := common.WriteMarker(serverPath, server); err != nil {
		return fmt.Errorf("failed to save server marker: %w", err)
	}
	if err := common.WriteMarker(countryPath, country); err != nil {
		return fmt.Errorf("failed to save country marker: %w", err)
	}
	return nil
}

// HasAccountMarker reports whether the has_account marker exists.
func (s *SettingsStore) HasAccountMarker() bool {
	return common.FileExists(filepath.Join(s.dir, common.AccountMarkerFileName))
}

// TouchAccountMarker creates the has_account marker.
func (s *SettingsStore) TouchAccountMarker() error {
	return common.TouchFile(filepath.Join(s.dir, common.AccountMarkerFileName))
}
