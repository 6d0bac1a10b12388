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

// statusView is the -o yaml form of the status command.
type statusView struct {
	Status  string               `yaml:"status"`
	Account *nordvpn.AccountInfo `yaml:"account,omitempty"`
	Details map[string]string    `yaml:"details,omitempty"`
}

// parseDetails turns "Key: value" lines into a map with lower-case keys.
func parseDetails(text string) map[string]string {
	details := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || key == "status" {
			continue
		}
		details[key] = strings.TrimSpace(value)
	}
	return details
}

func (a *app) statusCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the connection status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			raw, err := a.backend.Client.QueryStatus(ctx)
			status := vpn.ClassifyStatus(raw, err)

			if output == "yaml" {
				view := statusView{Status: status.String()}
				if status == vpn.StatusConnected {
					if info, err := a.backend.Client.AccountInfo(ctx); err == nil {
						view.Account = &info
					}
					if text, err := a.backend.Client.StatusInfo(ctx); err == nil {
						view.Details = parseDetails(text)
					}
				}
				return yaml.NewEncoder(out).Encode(view)
			}
			if output != "" {
				return fmt.Errorf("%w: unknown output format %q", vpn.ErrUserInputInvalid, output)
			}

			fmt.Fprintln(out, statusPill(status))
			report, _ := a.backend.Manager.StatusReport(ctx)
			fmt.Fprintln(out, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format (yaml)")
	return cmd
}

func (a *app) accountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the NordVPN account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.backend.Client.IsLoggedIn(ctx) {
				return vpn.ErrNotLoggedIn
			}
			info, err := a.backend.Client.AccountInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to read account: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("E-mail"), info.Email)
			fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("Service"), info.ExpiryText)
			return w.Flush()
		},
	}
}

func (a *app) orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Open the NordVPN order page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			link := a.backend.Config.OrderLink
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return a.opts.OpenURI(link)
		},
	}
}

// requireLogin logs in with a remembered token when needed.
func (a *app) requireLogin(ctx context.Context) error {
	return a.backend.Manager.EnsureLoggedIn(ctx)
}
