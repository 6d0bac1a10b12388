package nordvpn

import (
	"regexp"
	"sort"
	"strings"
)

var (
	ansiEscape     = regexp.MustCompile(`\x1B\[[0-?]*[ -/]*[@-~]`)
	countrySplit   = regexp.MustCompile("\t|\n|, ")
	failureMarkers = []string{"support", "oops", "cannot"}
)

// CountryRecord is a country supported by both the CLI and the public API.
type CountryRecord struct {
	ID int `json:"id" yaml:"id"`
	// Name is in the form accepted by "nordvpn connect" (spaces replaced by underscores).
	Name string `json:"name" yaml:"name"`
	// Code is the lower-case ISO 3166 alpha-2 code.
	Code string `json:"code" yaml:"code"`
}

// AccountInfo holds the parts of "nordvpn account" shown to the user.
type AccountInfo struct {
	Email      string `yaml:"email"`
	ExpiryText string `yaml:"expires"`
}

// stripANSI removes terminal escape sequences.
func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// cleanText removes escape sequences and the spinner characters the CLI
// draws before its real output.
func cleanText(s string) string {
	s = stripANSI(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.TrimSpace(s)
}

// HasFailureMarker reports whether output reads like an error even though the
// process may have exited with 0.
func HasFailureMarker(output string) bool {
	lower := strings.ToLower(output)
	for _, m := range failureMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// parseAccount extracts the e-mail address and expiry text from "nordvpn account".
func parseAccount(raw string) AccountInfo {
	var info AccountInfo
	for _, line := range strings.Split(cleanAccount(raw), "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "mail"):
			if _, v, ok := strings.Cut(line, ":"); ok {
				info.Email = strings.TrimSpace(v)
			}
		case strings.Contains(lower, "expires"):
			info.ExpiryText = expiryText(line)
		}
	}
	return info
}

// cleanAccount is cleanText without dropping '-', which is valid in e-mail addresses.
func cleanAccount(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(stripANSI(s), "\r", ""))
}

// expiryText turns "VPN Service: Active (Expires on Dec 12th, 2026)" into
// "Account expires on Dec 12th, 2026".
func expiryText(line string) string {
	var text string
	if _, after, ok := strings.Cut(line, "("); ok {
		text = strings.TrimSpace(strings.ReplaceAll(after, ")", ""))
	} else if _, after, ok := strings.Cut(line, ":"); ok {
		text = strings.TrimSpace(after)
	}
	if text == "" {
		return ""
	}
	return "Account " + strings.ToLower(text[:1]) + text[1:]
}

// parseCLICountries splits "nordvpn countries" output into display names.
func parseCLICountries(raw string) []string {
	raw = cleanText(raw)
	raw = strings.ReplaceAll(raw, "_", " ")

	var names []string
	for _, name := range countrySplit.Split(raw, -1) {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// matchCountries keeps the API countries whose name contains one of the CLI
// names, ignoring case.
func matchCountries(cliNames []string, apiCountries []apiCountry) []CountryRecord {
	lowered := make([]string, len(cliNames))
	for i, n := range cliNames {
		lowered[i] = strings.ToLower(n)
	}

	var records []CountryRecord
	for _, c := range apiCountries {
		name := strings.ToLower(c.Name)
		for _, n := range lowered {
			if strings.Contains(name, n) {
				records = append(records, CountryRecord{
					ID:   c.ID,
					Name: strings.ReplaceAll(c.Name, " ", "_"),
					Code: strings.ToLower(c.Code),
				})
				break
			}
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

// selectServers applies the recommendation filter: the first ten candidates,
// with a positive load and, when NordLynx is required, WireGuard support.
// The API ranking is preserved and host names lose their domain.
func selectServers(servers []apiServer, nordlynx bool) []string {
	if len(servers) > 10 {
		servers = servers[:10]
	}

	var names []string
	for _, s := range servers {
		if s.Load <= 0 {
			continue
		}
		if nordlynx && !s.supports(technologyWireguard) {
			continue
		}
		host, _, _ := strings.Cut(s.Hostname, ".")
		if host != "" {
			names = append(names, host)
		}
	}
	return names
}

// hasLine reports whether any line of raw contains substr, ignoring case.
func hasLine(raw, substr string) bool {
	substr = strings.ToLower(substr)
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(strings.ToLower(line), substr) {
			return true
		}
	}
	return false
}
