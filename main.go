// Package main provides the entry point for NordVPN Indicator.
// NordVPN Indicator is a system tray indicator for the NordVPN Linux client:
// it shows the connection status and gives quick access to connect,
// disconnect, rating and the client settings.
//
// Usage:
//
//	nordvpn-indicator [command] [flags]
//
// Without a command the tray indicator starts.
//
// Environment:
//
//	The application requires the nordvpn client to be installed on the system.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/yllada/nordvpn-indicator/cli"
	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/config"
	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	os.Exit(run())
}

// run executes the command line and returns its exit code. Exiting happens
// in main so the deferred cleanup here always runs.
func run() int {
	defer common.CloseLogger()

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	root := cli.NewRootCmd(cli.Options{
		Version:   appVersion,
		BuildTime: buildTime,
		Commit:    commitSHA,
		RunGUI: func(b *cli.Backend) error {
			return runGUI(ctx, b)
		},
	})
	return cli.Execute(ctx, root)
}

// runGUI starts the tray indicator and blocks until it quits.
func runGUI(ctx context.Context, b *cli.Backend) error {
	if !checkNordVPNInstalled() {
		common.LogError("The nordvpn client is not installed on the system")
		return fmt.Errorf("the nordvpn client is not installed, see https://nordvpn.com/download/linux/")
	}

	distrib := config.DistribID()
	if distrib == "" {
		distrib = "unknown"
	}
	common.LogInfo("Starting %s v%s (distribution: %s)", common.AppName, appVersion, distrib)

	app := ui.NewApplication(ctx, b.Config, b.Client, b.Manager, appVersion)
	// Arguments belong to the command line; GTK gets the program name only.
	exitCode := app.Run(os.Args[:1])
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
		return fmt.Errorf("application exited with code %d", exitCode)
	}
	return nil
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context; running commands stop
// and the tray quits.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}

// checkNordVPNInstalled verifies that the nordvpn client is in the PATH.
func checkNordVPNInstalled() bool {
	_, err := exec.LookPath(nordvpn.Binary)
	return err == nil
}
