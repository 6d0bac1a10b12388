package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/vpn"
)

func (a *app) connectCmd() *cobra.Command {
	var quick bool
	cmd := &cobra.Command{
		Use:   "connect [country-or-server]",
		Short: "Connect to NordVPN",
		Long: `Connect to a country or a server.
Without an argument the autoconnect target is used, then the fastest
recommended server. --quick lets the NordVPN client choose.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if quick && len(args) > 0 {
				return fmt.Errorf("%w: --quick does not take a country or server", common.ErrUserInputInvalid)
			}
			ctx := cmd.Context()
			if err := a.requireLogin(ctx); err != nil {
				return err
			}

			connect := true
			req := vpn.ConnectionRequest{Connect: &connect, Quick: quick}
			if len(args) > 0 {
				req.Server = args[0]
			}
			if !quick {
				// Fills the autoconnect target from the settings and markers.
				_, _ = a.backend.Manager.Store().Load(ctx, false)
			}
			return a.change(cmd, "Connecting", req)
		},
	}
	cmd.Flags().BoolVarP(&quick, "quick", "q", false, "let the NordVPN client pick the server")
	return cmd
}

func (a *app) disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect from NordVPN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			connect := false
			return a.change(cmd, "Disconnecting", vpn.ConnectionRequest{Connect: &connect})
		},
	}
}

func (a *app) change(cmd *cobra.Command, title string, req vpn.ConnectionRequest) error {
	out := cmd.OutOrStdout()
	outcome, err := withSpinner(cmd.Context(), out, title+"...", func(ctx context.Context) vpn.ConnectionOutcome {
		return a.backend.Manager.ChangeConnection(ctx, req)
	})
	if err != nil {
		return err
	}
	if !outcome.Result.OK() {
		return fmt.Errorf("%s: %s", outcome.FailureTitle(), outcome.FailureMessage())
	}
	fmt.Fprintln(out, okStyle.Render("✓ ")+outcome.Result.Message)
	return nil
}

func (a *app) rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <1-5>",
		Short: "Rate the last connection",
		Long:  "Rate the last connection from 1 (poor) to 5 (excellent).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil || score < common.MinRating || score > common.MaxRating {
				return fmt.Errorf("%w: rating must be a number from %d to %d", vpn.ErrUserInputInvalid, common.MinRating, common.MaxRating)
			}

			res := a.backend.Manager.Rate(cmd.Context(), score)
			if !res.OK() {
				msg := res.Message
				if msg == "" {
					msg = common.SupportMessage
				}
				return fmt.Errorf("rating failed: %s", msg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓ ")+res.Message)
			return nil
		},
	}
}
