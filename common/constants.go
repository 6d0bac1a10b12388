// Package common provides shared constants, types, and utilities
// used across the NordVPN Indicator application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "nordvpn-indicator"
	// AppName is the display name of the application.
	AppName = "NordVPN Indicator"
	// ApplicationID is the GTK/D-Bus application id.
	ApplicationID = "com.github.yllada.NordVPNIndicator"
	// ConfigDirName is the name of the configuration directory.
	// It is shared with the NordVPN client so the marker files live next to its own state.
	ConfigDirName = "nordvpn"
)

// File names used by the application.
const (
	IndicatorConfFileName = "indicator.conf"
	LogFileName           = "indicator.log"
	// ServerMarkerFileName holds the autoconnect server name.
	ServerMarkerFileName = "server"
	// CountryMarkerFileName holds the autoconnect country name.
	CountryMarkerFileName = "country"
	// AccountMarkerFileName exists once the user has connected at least once.
	AccountMarkerFileName = "has_account"
	// DaemonLogPath is the log written by the NordVPN daemon.
	DaemonLogPath = "/var/log/nordvpn/daemon.log"
)

// External endpoints.
const (
	// DefaultOrderLink is written to indicator.conf when ORDER_LINK is missing.
	DefaultOrderLink = "https://join.nordvpn.com/order/"
	// APIBaseURL is the public NordVPN server metadata API.
	APIBaseURL = "https://api.nordvpn.com"
	// SupportMessage is shown when a failed action produced no output.
	SupportMessage = "If the problem persists, contact NordVPN customer support."
)

// Default timeouts and intervals.
const (
	// PollInterval is how often the connection status is queried.
	PollInterval = 10 * time.Second
	// MinPollInterval is the lower bound accepted from indicator.conf.
	MinPollInterval = 2 * time.Second
	// ConnectTimeout bounds connect and disconnect commands.
	ConnectTimeout = 10 * time.Second
	// QueryTimeout bounds status, settings, account and country queries.
	QueryTimeout = 5 * time.Second
	// PackageCheckTimeout bounds the dpkg and wg checks.
	PackageCheckTimeout = 2 * time.Second
	// APITimeout bounds requests to the public API.
	APITimeout = 5 * time.Second
	// RotationCheckInterval is how often the log file size is checked.
	RotationCheckInterval = 1 * time.Hour
)

// Rating bounds accepted by the NordVPN client.
const (
	MinRating = 1
	MaxRating = 5
)

// Technology identifiers understood by "nordvpn set technology".
const (
	TechnologyNordLynx = "NordLynx"
	TechnologyOpenVPN  = "OpenVPN"
)
