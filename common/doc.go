// Package common provides shared constants, types, utilities, and interfaces
// used throughout the NordVPN Indicator application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: file names, endpoints, timeouts and rating bounds
//   - Errors: Sentinel errors and CommandError for adapter failures
//   - Interfaces: Notifier and Logger abstractions
//   - Logger: Structured logging to stdout and indicator.log with rotation
//   - Utils: Config directory lookup and marker file helpers
//
// # Usage
//
//	import "github.com/yllada/nordvpn-indicator/common"
//
//	common.LogInfo("Connected to %s", server)
//
//	if errors.Is(err, common.ErrTimeout) {
//	    // The nordvpn command did not answer in time
//	}
package common
