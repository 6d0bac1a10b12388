package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yllada/nordvpn-indicator/vpn"
)

func (a *app) loginCmd() *cobra.Command {
	var (
		token    string
		remember bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log into NordVPN with an access token",
		Long: `Log into NordVPN with an access token generated in the Nord Account
dashboard. Without --token the token is read from the terminal without echo,
or from standard input when it is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				t, err := readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				token = t
			}

			if err := a.backend.Manager.Login(cmd.Context(), token, remember); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓ ")+"Logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "access token")
	cmd.Flags().BoolVar(&remember, "remember", false, "store the token in the system keyring")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out of NordVPN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.backend.Manager.Logout(cmd.Context(), !keep)
			if !res.OK() {
				return fmt.Errorf("logout failed: %s", res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓ ")+"Logged out")
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "keep-token", false, "keep the remembered token in the keyring")
	return cmd
}

// readToken prompts for the token on a terminal, or reads one line.
func readToken(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Access token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return checkToken(string(b))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return checkToken(line)
}

func checkToken(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: access token is required", vpn.ErrUserInputInvalid)
	}
	return s, nil
}
