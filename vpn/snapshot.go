package vpn

import (
	"regexp"
	"strings"
)

var settingPair = regexp.MustCompile(`(\w+):(\w+)`)

// SettingsSnapshot is the normalized view of "nordvpn settings" plus the
// autoconnect target kept in the marker files.
type SettingsSnapshot struct {
	Protocol          string `yaml:"protocol,omitempty"`
	Country           string `yaml:"country,omitempty"`
	Server            string `yaml:"server,omitempty"`
	Autoconnect       bool   `yaml:"autoconnect"`
	Cybersec          bool   `yaml:"cybersec"`
	Killswitch        bool   `yaml:"killswitch"`
	DNS               bool   `yaml:"dns"`
	NordlynxAvailable bool   `yaml:"nordlynx_available"`
	NordlynxActive    bool   `yaml:"nordlynx_active"`
}

// Target returns the autoconnect target; the server wins over the country.
func (s SettingsSnapshot) Target() string {
	if s.Server != "" {
		return s.Server
	}
	return s.Country
}

// ProtocolExposed reports whether the daemon shows a protocol setting,
// which it doesn't while NordLynx is the technology.
func (s SettingsSnapshot) ProtocolExposed() bool {
	return s.Protocol != ""
}

// ParseSettings parses "nordvpn settings" output. Keys are matched after
// lower-casing and removing spaces, dashes and underscores, so
// "Kill Switch: enabled" and "kill_switch:enabled" are the same line.
// Unknown keys are ignored; missing keys stay false or empty.
func ParseSettings(raw string) SettingsSnapshot {
	var s SettingsSnapshot

	text := strings.ToLower(raw)
	text = strings.NewReplacer(" ", "", "-", "", "_", "", "\r", "", "\t", "").Replace(text)

	for _, line := range strings.Split(text, "\n") {
		m := settingPair.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, value := m[1], m[2]
		switch key {
		case "protocol":
			s.Protocol = strings.ToUpper(value)
		case "technology":
			s.NordlynxActive = value == "nordlynx"
		case "autoconnect":
			s.Autoconnect = enabled(value)
		case "cybersec", "threatprotectionlite":
			s.Cybersec = enabled(value)
		case "killswitch":
			s.Killswitch = enabled(value)
		case "dns":
			s.DNS = value != "disabled"
		}
	}
	return s
}

func enabled(value string) bool {
	return strings.Contains(value, "enabled")
}
