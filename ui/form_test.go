package ui

import (
	"reflect"
	"testing"

	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/vpn"
)

var testCountries = []nordvpn.CountryRecord{
	{ID: 81, Name: "Germany", Code: "de"},
	{ID: 227, Name: "United_Kingdom", Code: "gb"},
	{ID: 208, Name: "Sweden", Code: "se"},
}

func TestServerCountry(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"de1017", "Germany"},
		{"uk2001", "United_Kingdom"},
		{"SE200", "Sweden"},
		{"fr400", ""},
		{"d", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			if got := serverCountry(tt.server, testCountries); got != tt.want {
				t.Errorf("serverCountry(%q) = %q, want %q", tt.server, got, tt.want)
			}
		})
	}
}

func TestFormFromSnapshot(t *testing.T) {
	tests := []struct {
		name string
		snap vpn.SettingsSnapshot
		want settingsForm
	}{
		{
			name: "server target selects its country",
			snap: vpn.SettingsSnapshot{Autoconnect: true, Server: "de1017", Protocol: "udp", Cybersec: true},
			want: settingsForm{Autoconnect: true, Country: "Germany", Server: "de1017", Protocol: "UDP", Cybersec: true},
		},
		{
			name: "country target",
			snap: vpn.SettingsSnapshot{Autoconnect: true, Country: "Sweden", Killswitch: true},
			want: settingsForm{Autoconnect: true, Country: "Sweden", Killswitch: true},
		},
		{
			name: "target ignored without autoconnect",
			snap: vpn.SettingsSnapshot{Country: "Sweden", NordlynxActive: true},
			want: settingsForm{Nordlynx: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formFromSnapshot(tt.snap, testCountries); got != tt.want {
				t.Errorf("formFromSnapshot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettingsForm_Desired(t *testing.T) {
	openvpn := vpn.SettingsSnapshot{Protocol: "udp", DNS: true, NordlynxAvailable: true}
	nordlynx := vpn.SettingsSnapshot{NordlynxActive: true}

	tests := []struct {
		name    string
		current vpn.SettingsSnapshot
		form    settingsForm
		want    vpn.SettingsSnapshot
	}{
		{
			name:    "server wins over country",
			current: openvpn,
			form:    settingsForm{Autoconnect: true, Country: "Germany", Server: "de1017", Protocol: "UDP"},
			want:    vpn.SettingsSnapshot{Autoconnect: true, Server: "de1017", Protocol: "UDP", DNS: true, NordlynxAvailable: true},
		},
		{
			name:    "country only",
			current: openvpn,
			form:    settingsForm{Autoconnect: true, Country: "Germany", Protocol: "TCP", Cybersec: true},
			want:    vpn.SettingsSnapshot{Autoconnect: true, Country: "Germany", Protocol: "TCP", Cybersec: true, DNS: true, NordlynxAvailable: true},
		},
		{
			name:    "autoconnect off clears the target",
			current: vpn.SettingsSnapshot{Autoconnect: true, Country: "Germany", Protocol: "udp", NordlynxAvailable: true},
			form:    settingsForm{Country: "Germany", Server: "de1017", Protocol: "UDP", Nordlynx: true},
			want:    vpn.SettingsSnapshot{Protocol: "UDP", NordlynxAvailable: true, NordlynxActive: true},
		},
		{
			name:    "protocol hidden keeps it empty",
			current: nordlynx,
			form:    settingsForm{Protocol: "TCP", Nordlynx: false, Killswitch: true},
			want:    vpn.SettingsSnapshot{NordlynxActive: true, Killswitch: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.desired(tt.current); got != tt.want {
				t.Errorf("desired() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCountryNames(t *testing.T) {
	got := countryNames(testCountries, true)
	want := []string{"", "Germany", "United_Kingdom", "Sweden"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("countryNames() = %v, want %v", got, want)
	}

	labels := displayLabels(got)
	if labels[2] != "United Kingdom" {
		t.Errorf("displayLabels()[2] = %q, want %q", labels[2], "United Kingdom")
	}
}

func TestIndexOfAndValueAt(t *testing.T) {
	values := []string{"", "UDP", "TCP"}

	if i, ok := indexOf(values, "TCP"); !ok || i != 2 {
		t.Errorf("indexOf(TCP) = %d, %v, want 2, true", i, ok)
	}
	if i, ok := indexOf(values, "ICMP"); ok || i != 0 {
		t.Errorf("indexOf(ICMP) = %d, %v, want 0, false", i, ok)
	}
	if got := valueAt(values, 1); got != "UDP" {
		t.Errorf("valueAt(1) = %q, want UDP", got)
	}
	// GTK reports no selection as the largest list position.
	if got := valueAt(values, ^uint(0)); got != "" {
		t.Errorf("valueAt(invalid) = %q, want empty", got)
	}
}
