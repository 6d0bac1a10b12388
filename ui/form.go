package ui

import (
	"strings"

	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/vpn"
)

// Protocols offered while the daemon exposes the protocol setting.
var protocols = []string{"UDP", "TCP"}

// serverCodeAliases maps server name prefixes that aren't ISO codes.
var serverCodeAliases = map[string]string{"uk": "gb"}

// settingsForm holds the values of the settings dialog widgets.
type settingsForm struct {
	Autoconnect bool
	Country     string
	Server      string
	Cybersec    bool
	Killswitch  bool
	Protocol    string
	Nordlynx    bool
}

// formFromSnapshot preselects the dialog from the current settings.
// A server target also selects the country it belongs to.
func formFromSnapshot(s vpn.SettingsSnapshot, countries []nordvpn.CountryRecord) settingsForm {
	f := settingsForm{
		Autoconnect: s.Autoconnect,
		Cybersec:    s.Cybersec,
		Killswitch:  s.Killswitch,
		Protocol:    strings.ToUpper(s.Protocol),
		Nordlynx:    s.NordlynxActive,
	}
	if s.Autoconnect {
		if s.Server != "" {
			f.Server = s.Server
			f.Country = serverCountry(s.Server, countries)
		} else {
			f.Country = s.Country
		}
	}
	return f
}

// desired builds the snapshot to reconcile against current. Settings the
// dialog doesn't show keep their current value.
func (f settingsForm) desired(current vpn.SettingsSnapshot) vpn.SettingsSnapshot {
	d := current
	d.Autoconnect = f.Autoconnect
	d.Country, d.Server = "", ""
	if f.Autoconnect {
		if f.Server != "" {
			d.Server = f.Server
		} else {
			d.Country = f.Country
		}
	}
	d.Cybersec = f.Cybersec
	d.Killswitch = f.Killswitch
	if current.ProtocolExposed() && f.Protocol != "" {
		d.Protocol = f.Protocol
	}
	if current.NordlynxAvailable {
		d.NordlynxActive = f.Nordlynx
	}
	return d
}

// serverCountry returns the name of the country a server like "de1017"
// belongs to, or "".
func serverCountry(server string, countries []nordvpn.CountryRecord) string {
	if len(server) < 2 {
		return ""
	}
	code := strings.ToLower(server[:2])
	if alias, ok := serverCodeAliases[code]; ok {
		code = alias
	}
	for _, c := range countries {
		if c.Code == code {
			return c.Name
		}
	}
	return ""
}

// countryNames returns the country names, with a leading blank entry when
// blank is set.
func countryNames(countries []nordvpn.CountryRecord, blank bool) []string {
	names := make([]string, 0, len(countries)+1)
	if blank {
		names = append(names, "")
	}
	for _, c := range countries {
		names = append(names, c.Name)
	}
	return names
}

// displayLabels turns underscored names into readable labels.
func displayLabels(values []string) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = strings.ReplaceAll(v, "_", " ")
	}
	return labels
}

// indexOf returns the position of value in values.
func indexOf(values []string, value string) (uint, bool) {
	for i, v := range values {
		if v == value {
			return uint(i), true
		}
	}
	return 0, false
}

// valueAt returns values[i], or "" when i is out of range.
func valueAt(values []string, i uint) string {
	if int(i) >= len(values) {
		return ""
	}
	return values[i]
}
