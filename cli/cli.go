// Package cli provides the command-line interface of NordVPN Indicator.
// Running the binary without a subcommand starts the tray indicator; the
// subcommands give the same actions from a terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/config"
	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/vpn"
)

// Backend is what the commands operate on.
type Backend struct {
	Config  *config.Config
	Client  *nordvpn.Client
	Manager *vpn.Manager
}

// NewBackend builds a backend talking to the installed NordVPN client.
func NewBackend(cfg *config.Config) *Backend {
	client := nordvpn.NewClient()
	return &Backend{
		Config:  cfg,
		Client:  client,
		Manager: vpn.NewManager(client, cfg.Dir(), cfg.PollInterval),
	}
}

// Options configures the root command.
type Options struct {
	Version   string
	BuildTime string
	Commit    string

	// ConfigDir overrides the default ~/.config/nordvpn.
	ConfigDir string
	// RunGUI starts the tray indicator. It runs when no subcommand is given.
	RunGUI func(b *Backend) error
	// NewBackend overrides how the backend is built, for tests.
	NewBackend func(cfg *config.Config) *Backend
	// OpenURI overrides common.OpenURI, for tests.
	OpenURI func(uri string) error
	// NoFileLog keeps the log on stdout only.
	NoFileLog bool
}

type app struct {
	opts    Options
	backend *Backend
	verbose bool
}

// NewRootCmd creates the nordvpn-indicator command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.NewBackend == nil {
		opts.NewBackend = NewBackend
	}
	if opts.OpenURI == nil {
		opts.OpenURI = common.OpenURI
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   common.AppID,
		Short: "Tray indicator and command line for the NordVPN client",
		Long: `NordVPN Indicator

  Shows the NordVPN connection status in the system tray and gives quick
  access to connect, disconnect, rating and settings.

  Run without a subcommand to start the tray indicator.

  Examples:
    nordvpn-indicator status
    nordvpn-indicator connect Germany
    nordvpn-indicator settings -o yaml`,
		Version:           opts.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.RunGUI == nil {
				return cmd.Help()
			}
			return a.opts.RunGUI(a.backend)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.statusCmd(),
		a.connectCmd(),
		a.disconnectCmd(),
		a.rateCmd(),
		a.settingsCmd(),
		a.countriesCmd(),
		a.serversCmd(),
		a.accountCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.orderCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads indicator.conf, configures logging and builds the backend.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(a.opts.ConfigDir)
	if err != nil {
		if cfg == nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	// Only the tray logs to stdout at the configured level; subcommands keep
	// stdout for their own output and log errors only, unless --verbose.
	level := common.ParseLogLevel(cfg.LogLevel)
	if cmd != cmd.Root() {
		common.GetLogger().SetOutput(cmd.ErrOrStderr())
		level = common.LevelError
	}
	if a.verbose {
		level = common.LevelDebug
	}
	if err := common.InitLogger(common.LogConfig{
		Level:      level,
		EnableFile: !a.opts.NoFileLog,
		Dir:        cfg.Dir(),
	}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not initialize file logging: %v\n", err)
	}

	a.backend = a.opts.NewBackend(cfg)
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", common.AppName, a.opts.Version)
			if a.opts.BuildTime != "" && a.opts.BuildTime != "unknown" {
				fmt.Fprintf(out, "  Build:  %s\n", a.opts.BuildTime)
				fmt.Fprintf(out, "  Commit: %s\n", a.opts.Commit)
			}
		},
	}
}

// Execute runs the root command with ctx and returns the process exit code.
func Execute(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		if errors.Is(err, common.ErrNotLoggedIn) {
			fmt.Fprintln(os.Stderr, "Log in first: nordvpn-indicator login")
		}
		return 1
	}
	return 0
}
