package vpn

import (
	"errors"
	"testing"
)

func TestConnectionStatus_String(t *testing.T) {
	tests := []struct {
		status   ConnectionStatus
		expected string
	}{
		{StatusConnecting, "Connecting"},
		{StatusDisconnecting, "Disconnecting"},
		{StatusConnected, "Connected"},
		{StatusDisconnected, "Disconnected"},
		{StatusNoInternet, "No internet"},
		{StatusUnknown, "Unknown"},
		{ConnectionStatus(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("ConnectionStatus.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
		want ConnectionStatus
	}{
		{"connected", "Status: Connected\nCurrent server: de1017.nordvpn.com\n", nil, StatusConnected},
		{"disconnected", "Status: Disconnected\n", nil, StatusDisconnected},
		{"connecting", "Status: Connecting\n", nil, StatusConnecting},
		{"disconnecting", "Status: Disconnecting\n", nil, StatusDisconnecting},
		{"reconnecting", "Status: Reconnecting", nil, StatusConnecting},
		{"lower case", "status: disconnected", nil, StatusDisconnected},
		{"spinner noise", "\r-\r  \rStatus: Connected\nCurrent technology: NORDLYNX", nil, StatusConnected},
		{"technology line ignored", "Status: Connected\nCurrent technology: OPENVPN\nTransfer: 1 MiB received", nil, StatusConnected},
		{"no status line discon ing", "disconnecting", nil, StatusDisconnecting},
		{"no status line discon", "DISCONNECTED", nil, StatusDisconnected},
		{"no status line ing", "Connecting...", nil, StatusConnecting},
		{"no status line other", "Connected", nil, StatusConnected},
		{"daemon unreachable", "Whoops! Cannot reach User Daemon.", nil, StatusNoInternet},
		{"not logged in", "You are not logged in.", nil, StatusNoInternet},
		{"support hint", "Something went wrong. Please contact our customer support.", nil, StatusNoInternet},
		{"empty", "", nil, StatusNoInternet},
		{"blank", "  \n", nil, StatusNoInternet},
		{"empty status value", "Status:\n", nil, StatusNoInternet},
		{"query failed", "Status: Connected", errors.New("timeout"), StatusNoInternet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStatus(tt.raw, tt.err); got != tt.want {
				t.Errorf("ClassifyStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestConnectionStatus_Busy(t *testing.T) {
	busy := []ConnectionStatus{StatusUnknown, StatusConnecting, StatusDisconnecting, StatusNoInternet}
	for _, s := range busy {
		if !s.Busy() {
			t.Errorf("%v.Busy() = false, want true", s)
		}
	}
	for _, s := range []ConnectionStatus{StatusConnected, StatusDisconnected} {
		if s.Busy() {
			t.Errorf("%v.Busy() = true, want false", s)
		}
	}
}
