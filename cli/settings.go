package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yllada/nordvpn-indicator/nordvpn"
	"github.com/yllada/nordvpn-indicator/vpn"
)

func (a *app) settingsCmd() *cobra.Command {
	var (
		output  string
		desired vpn.SettingsSnapshot
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the NordVPN settings",
		Long: `Show the NordVPN settings, including the autoconnect target.
Any of the setting flags applies a change with the fewest commands.`,
		Example: `  nordvpn-indicator settings
  nordvpn-indicator settings --killswitch=true --cybersec=false
  nordvpn-indicator settings --autoconnect --country Germany`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			manager := a.backend.Manager

			current, err := manager.Store().Load(ctx, true)
			if err != nil {
				return fmt.Errorf("failed to read settings: %w", err)
			}

			flags := cmd.Flags()
			if changed := applySettingFlags(flags.Changed, current, desired); changed != current {
				if changed.Protocol != "" && !current.ProtocolExposed() {
					return fmt.Errorf("%w: the protocol can't be set while NordLynx is active", vpn.ErrUserInputInvalid)
				}
				if changed.NordlynxActive != current.NordlynxActive && !current.NordlynxAvailable {
					return fmt.Errorf("%w: NordLynx needs WireGuard to be installed", vpn.ErrUserInputInvalid)
				}
				ok, err := withSpinner(ctx, cmd.OutOrStdout(), "Applying settings...", func(ctx context.Context) bool {
					return manager.ApplySettings(ctx, changed)
				})
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no setting could be applied, see %s", a.backend.Config.Dir())
				}
				current = manager.Store().Current()
			}

			return printSettings(cmd, output, current)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output format (yaml)")
	f.BoolVar(&desired.Autoconnect, "autoconnect", false, "connect automatically on start")
	f.StringVar(&desired.Country, "country", "", "autoconnect country")
	f.StringVar(&desired.Server, "server", "", "autoconnect server, wins over --country")
	f.BoolVar(&desired.Cybersec, "cybersec", false, "block ads and malicious sites")
	f.BoolVar(&desired.Killswitch, "killswitch", false, "block traffic while disconnected")
	f.StringVar(&desired.Protocol, "protocol", "", "OpenVPN protocol (UDP or TCP)")
	f.BoolVar(&desired.NordlynxActive, "nordlynx", false, "use NordLynx instead of OpenVPN")
	return cmd
}

// applySettingFlags overlays the flags the user gave on the current settings.
func applySettingFlags(changed func(string) bool, current, flags vpn.SettingsSnapshot) vpn.SettingsSnapshot {
	desired := current
	if changed("autoconnect") {
		desired.Autoconnect = flags.Autoconnect
	}
	if changed("server") {
		desired.Server = flags.Server
		desired.Country = ""
	}
	if changed("country") {
		desired.Country = flags.Country
		if !changed("server") {
			desired.Server = ""
		}
	}
	if changed("cybersec") {
		desired.Cybersec = flags.Cybersec
	}
	if changed("killswitch") {
		desired.Killswitch = flags.Killswitch
	}
	if changed("protocol") {
		desired.Protocol = strings.ToUpper(flags.Protocol)
	}
	if changed("nordlynx") {
		desired.NordlynxActive = flags.NordlynxActive
	}
	return desired
}

func printSettings(cmd *cobra.Command, output string, s vpn.SettingsSnapshot) error {
	out := cmd.OutOrStdout()
	switch output {
	case "yaml":
		return yaml.NewEncoder(out).Encode(s)
	case "":
	default:
		return fmt.Errorf("%w: unknown output format %q", vpn.ErrUserInputInvalid, output)
	}

	technology := "OpenVPN"
	if s.NordlynxActive {
		technology = "NordLynx"
	}
	target := s.Target()
	if target == "" {
		target = "best available"
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("Technology"), technology)
	if s.ProtocolExposed() {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("Protocol"), s.Protocol)
	}
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("Auto-connect"), onOff(s.Autoconnect))
	if s.Autoconnect {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("Target"), target)
	}
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("CyberSec"), onOff(s.Cybersec))
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("Kill Switch"), onOff(s.Killswitch))
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("DNS"), onOff(s.DNS))
	if !s.NordlynxAvailable {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("NordLynx"), warnStyle.Render("unavailable (WireGuard not installed)"))
	}
	return w.Flush()
}

func (a *app) countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the countries with NordVPN servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			countries, err := withSpinner(cmd.Context(), out, "Fetching countries...", a.backend.Client.ListCountries)
			if err != nil {
				return err
			}
			if len(countries) == 0 {
				return fmt.Errorf("no countries available, check your internet connection")
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("NAME")+"\t"+titleStyle.Render("CODE"))
			for _, c := range countries {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Code)
			}
			return w.Flush()
		},
	}
}

func (a *app) serversCmd() *cobra.Command {
	var country string
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List recommended servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := a.backend.Client

			servers, err := withSpinner(cmd.Context(), out, "Fetching servers...", func(ctx context.Context) []string {
				id := -1
				if country != "" {
					id = lookupCountry(client.ListCountries(ctx), country)
					if id < 0 {
						return nil
					}
				}
				return client.ListRecommendedServers(ctx, id)
			})
			if err != nil {
				return err
			}
			if len(servers) == 0 {
				if country != "" {
					return fmt.Errorf("no recommended servers for %q", country)
				}
				return fmt.Errorf("no recommended servers, check your internet connection")
			}

			for _, s := range servers {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&country, "country", "c", "", "only servers in this country")
	return cmd
}

// lookupCountry finds a country by name or ISO code, ignoring case.
// Spaces in name match the underscores of CountryRecord.Name.
func lookupCountry(countries []nordvpn.CountryRecord, name string) int {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	for _, c := range countries {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.Code, name) {
			return c.ID
		}
	}
	return -1
}
