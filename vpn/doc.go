// Package vpn provides the connection and settings logic of the indicator.
//
// The package sits between the NordVPN command line client (package
// nordvpn) and the user facing surfaces (tray, dialogs, CLI):
//
//   - Poller: samples the connection status and reports transitions
//   - SettingsStore: caches the daemon settings and owns the autoconnect
//     marker files in the config directory
//   - Reconciler: applies the differences between two settings snapshots
//     with the fewest commands
//   - MarkerWatcher: invalidates the store when marker files change on disk
//   - Manager: ties the above together for connect, disconnect, rating,
//     login and settings changes
//
// # Status Classification
//
// The raw "nordvpn status" output is reduced to a ConnectionStatus by
// ClassifyStatus. A failed or empty query is reported as StatusNoInternet.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Callbacks run on
// the goroutine that detected the change; UI code has to hop to its own
// main loop.
package vpn
