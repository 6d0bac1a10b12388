package vpn

import (
	"strings"

	"github.com/yllada/nordvpn-indicator/nordvpn"
)

// ConnectionStatus is the coarse state of the NordVPN connection.
type ConnectionStatus int

const (
	// StatusUnknown means no status has been polled yet.
	StatusUnknown ConnectionStatus = iota
	// StatusConnecting indicates a connection is being established.
	StatusConnecting
	// StatusDisconnecting indicates the connection is being terminated.
	StatusDisconnecting
	// StatusConnected indicates an active, established connection.
	StatusConnected
	// StatusDisconnected indicates no active connection.
	StatusDisconnected
	// StatusNoInternet means the status could not be queried.
	StatusNoInternet
)

// String returns a human-readable representation of the connection status.
func (s ConnectionStatus) String() string {
	switch s {
	case StatusConnecting:
		return "Connecting"
	case StatusDisconnecting:
		return "Disconnecting"
	case StatusConnected:
		return "Connected"
	case StatusDisconnected:
		return "Disconnected"
	case StatusNoInternet:
		return "No internet"
	default:
		return "Unknown"
	}
}

// Busy reports whether the status leaves no room for user actions.
func (s ConnectionStatus) Busy() bool {
	return s == StatusConnecting || s == StatusDisconnecting || s == StatusNoInternet || s == StatusUnknown
}

// ClassifyStatus maps the output of "nordvpn status" to a ConnectionStatus.
// Only the value of the "Status:" line is inspected when there is one, so
// words like "Current technology" elsewhere in the output don't count.
// Output without that line that reads like a daemon error is NoInternet.
func ClassifyStatus(raw string, err error) ConnectionStatus {
	if err != nil {
		return StatusNoInternet
	}

	value, found := statusValue(raw)
	text := strings.ToLower(value)
	if text == "" {
		return StatusNoInternet
	}
	if !found && (nordvpn.HasFailureMarker(text) || strings.Contains(text, "not logged in")) {
		return StatusNoInternet
	}

	if strings.Contains(text, "discon") {
		if strings.Contains(text, "ing") {
			return StatusDisconnecting
		}
		return StatusDisconnected
	}
	if strings.Contains(text, "ing") {
		return StatusConnecting
	}
	return StatusConnected
}

// statusValue returns the last field of the first "status:" line, or the
// whole trimmed text and false when there is no such line.
func statusValue(raw string) (string, bool) {
	for _, line := range strings.Split(raw, "\n") {
		i := strings.Index(strings.ToLower(line), "status:")
		if i < 0 {
			continue
		}
		fields := strings.Fields(line[i+len("status:"):])
		if len(fields) == 0 {
			return "", true
		}
		return fields[len(fields)-1], true
	}
	return strings.TrimSpace(raw), false
}
