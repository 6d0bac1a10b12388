package vpn

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yllada/nordvpn-indicator/common"
)

func baseSnapshot() SettingsSnapshot {
	return SettingsSnapshot{
		Protocol:          "UDP",
		Country:           "Germany",
		Autoconnect:       true,
		Cybersec:          false,
		Killswitch:        true,
		NordlynxAvailable: true,
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(s *SettingsSnapshot)
		wantCmds    []string
		wantChanged bool
	}{
		{
			name:        "no differences",
			modify:      func(s *SettingsSnapshot) {},
			wantCmds:    nil,
			wantChanged: false,
		},
		{
			name:        "cybersec only",
			modify:      func(s *SettingsSnapshot) { s.Cybersec = true },
			wantCmds:    []string{"set cybersec enabled"},
			wantChanged: true,
		},
		{
			name:        "killswitch only",
			modify:      func(s *SettingsSnapshot) { s.Killswitch = false },
			wantCmds:    []string{"set killswitch disabled"},
			wantChanged: true,
		},
		{
			name:        "protocol case-insensitive match",
			modify:      func(s *SettingsSnapshot) { s.Protocol = "udp" },
			wantCmds:    nil,
			wantChanged: false,
		},
		{
			name:        "protocol",
			modify:      func(s *SettingsSnapshot) { s.Protocol = "TCP" },
			wantCmds:    []string{"set protocol TCP"},
			wantChanged: true,
		},
		{
			name:        "protocol hidden",
			modify:      func(s *SettingsSnapshot) { s.Protocol = "" },
			wantCmds:    nil,
			wantChanged: false,
		},
		{
			name:        "autoconnect server",
			modify:      func(s *SettingsSnapshot) { s.Server = "de1017" },
			wantCmds:    []string{"set autoconnect disabled", "set autoconnect enabled de1017"},
			wantChanged: true,
		},
		{
			name:        "autoconnect off",
			modify:      func(s *SettingsSnapshot) { s.Autoconnect = false },
			wantCmds:    []string{"set autoconnect disabled"},
			wantChanged: true,
		},
		{
			name:        "autoconnect best available",
			modify:      func(s *SettingsSnapshot) { s.Country = "" },
			wantCmds:    []string{"set autoconnect disabled", "set autoconnect enabled"},
			wantChanged: true,
		},
		{
			name:   "switch to nordlynx",
			modify: func(s *SettingsSnapshot) { s.NordlynxActive = true },
			wantCmds: []string{
				"disconnect",
				"set technology NordLynx",
				"connect de1001",
			},
			wantChanged: true,
		},
		{
			name:        "nordlynx unavailable",
			modify:      func(s *SettingsSnapshot) { s.NordlynxAvailable = false; s.NordlynxActive = true },
			wantCmds:    nil,
			wantChanged: false,
		},
		{
			name: "all steps in order",
			modify: func(s *SettingsSnapshot) {
				s.Autoconnect = false
				s.Cybersec = true
				s.Killswitch = false
				s.Protocol = "TCP"
				s.NordlynxActive = true
			},
			wantCmds: []string{
				"set autoconnect disabled",
				"set cybersec enabled",
				"set killswitch disabled",
				"set protocol TCP",
				"disconnect",
				"set technology NordLynx",
				"connect de1001",
			},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAdapter()
			fake.fastest = "de1001"
			store := NewSettingsStore(fake, t.TempDir())

			old := baseSnapshot()
			desired := baseSnapshot()
			tt.modify(&desired)

			changed := NewReconciler(fake, store).Reconcile(context.Background(), old, desired)
			if changed != tt.wantChanged {
				t.Errorf("Reconcile() = %v, want %v", changed, tt.wantChanged)
			}
			if got := fake.issued(); !reflect.DeepEqual(got, tt.wantCmds) {
				t.Errorf("Reconcile() commands = %v, want %v", got, tt.wantCmds)
			}
		})
	}
}

func TestReconcile_SwitchToOpenVPN(t *testing.T) {
	fake := newFakeAdapter()
	old := SettingsSnapshot{NordlynxAvailable: true, NordlynxActive: true}
	desired := SettingsSnapshot{NordlynxAvailable: true}

	if !NewReconciler(fake, nil).Reconcile(context.Background(), old, desired) {
		t.Error("Reconcile() = false, want true")
	}
	want := []string{"disconnect", "set technology OpenVPN", "connect"}
	if got := fake.issued(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestReconcile_PartialFailure(t *testing.T) {
	fake := newFakeAdapter()
	fake.failing["set cybersec"] = true

	old := baseSnapshot()
	desired := baseSnapshot()
	desired.Cybersec = true
	desired.Killswitch = false

	if !NewReconciler(fake, nil).Reconcile(context.Background(), old, desired) {
		t.Error("Reconcile() = false, want true when one step succeeded")
	}
	want := []string{"set cybersec enabled", "set killswitch disabled"}
	if got := fake.issued(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, want %v (failure must not stop later steps)", got, want)
	}
}

func TestReconcile_AllFail(t *testing.T) {
	fake := newFakeAdapter()
	fake.failing["set"] = true

	old := baseSnapshot()
	desired := baseSnapshot()
	desired.Cybersec = true
	desired.Killswitch = false

	if NewReconciler(fake, nil).Reconcile(context.Background(), old, desired) {
		t.Error("Reconcile() = true, want false when every step failed")
	}
}

func TestReconcile_Markers(t *testing.T) {
	dir := t.TempDir()
	fake := newFakeAdapter()
	store := NewSettingsStore(fake, dir)
	r := NewReconciler(fake, store)
	ctx := context.Background()

	old := baseSnapshot()
	desired := baseSnapshot()
	desired.Server = "de1017"
	r.Reconcile(ctx, old, desired)

	serverPath := filepath.Join(dir, common.ServerMarkerFileName)
	countryPath := filepath.Join(dir, common.CountryMarkerFileName)
	if got := common.ReadMarker(serverPath); got != "de1017" {
		t.Errorf("server marker = %q, want de1017", got)
	}
	if common.FileExists(countryPath) {
		t.Error("country marker should be removed when a server is chosen")
	}

	// A failed autoconnect change leaves the markers alone.
	fake.failing["set autoconnect"] = true
	next := desired
	next.Server = "nl350"
	r.Reconcile(ctx, desired, next)
	if got := common.ReadMarker(serverPath); got != "de1017" {
		t.Errorf("server marker = %q after failed change, want de1017", got)
	}
}
