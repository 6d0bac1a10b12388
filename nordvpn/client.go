// Package nordvpn wraps the nordvpn command-line client and the public
// NordVPN server API. Every call is bounded by a timeout and fails closed:
// callers get an empty value or a Result with a nonzero code, never a panic.
package nordvpn

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/yllada/nordvpn-indicator/common"
)

// Binary is the NordVPN client executable.
const Binary = "nordvpn"

// Result is the outcome of a command that changes daemon state.
type Result struct {
	// Code is 0 on success.
	Code int
	// Message is the cleaned command output.
	Message string
	// Err describes the failure when Code is nonzero.
	Err error
}

// OK reports whether the command succeeded.
func (r Result) OK() bool {
	return r.Code == 0
}

// Client is the adapter for the nordvpn CLI.
type Client struct {
	runner Runner
	api    *API
}

// NewClient creates a client using the real nordvpn binary and public API.
func NewClient() *Client {
	return NewClientWith(ExecRunner{}, NewAPI(""))
}

// NewClientWith creates a client with a custom runner and API, mainly for tests.
func NewClientWith(runner Runner, api *API) *Client {
	if api == nil {
		api = NewAPI("")
	}
	return &Client{runner: runner, api: api}
}

// Connect connects to target, which may be a country, a country code or a
// server name. An empty target lets the daemon pick the best server.
func (c *Client) Connect(ctx context.Context, target string) Result {
	args := []string{"connect"}
	if target != "" {
		args = append(args, target)
	}
	return c.change(ctx, args...)
}

// Disconnect ends the current VPN connection.
func (c *Client) Disconnect(ctx context.Context) Result {
	return c.change(ctx, "disconnect")
}

// change runs a state-changing command. The CLI sometimes prints errors with
// exit code 0, so known failure words force a failure code.
func (c *Client) change(ctx context.Context, args ...string) Result {
	out, code, err := c.runner.Run(ctx, common.ConnectTimeout, Binary, args...)
	msg := strings.TrimSpace(strings.ReplaceAll(stripANSI(out), "\r", ""))
	msg = strings.TrimLeft(msg, "-\\|/ \n")

	if err != nil {
		if code == 0 {
			code = CodeFailure
		}
		common.LogWarn("nordvpn %s failed (%d): %v", args[0], code, err)
		return Result{Code: code, Message: msg, Err: err}
	}
	if HasFailureMarker(msg) {
		common.LogWarn("nordvpn %s reported failure: %s", args[0], msg)
		return Result{
			Code:    CodeFailure,
			Message: msg,
			Err:     &common.CommandError{Command: CommandLine(Binary, args...), Code: CodeFailure, Err: common.ErrCommandFailed},
		}
	}
	common.LogDebug("%s: %s", CommandLine(Binary, args...), msg)
	return Result{Message: msg}
}

// query runs a read-only command.
func (c *Client) query(ctx context.Context, args ...string) (string, error) {
	out, _, err := c.runner.Run(ctx, common.QueryTimeout, Binary, args...)
	if err != nil {
		common.LogDebug("nordvpn %s failed: %v", strings.Join(args, " "), err)
		return "", err
	}
	return stripANSI(out), nil
}

// QueryStatus returns the raw "nordvpn status" output.
func (c *Client) QueryStatus(ctx context.Context) (string, error) {
	return c.query(ctx, "status")
}

// QuerySettings returns the raw "nordvpn settings" output.
func (c *Client) QuerySettings(ctx context.Context) (string, error) {
	return c.query(ctx, "settings")
}

// StatusInfo returns the status output cleaned up for display.
func (c *Client) StatusInfo(ctx context.Context) (string, error) {
	out, err := c.QueryStatus(ctx)
	if err != nil {
		return "", err
	}
	return cleanText(out), nil
}

// Rate sends a rating for the last connection. The score is clamped to 1..5.
func (c *Client) Rate(ctx context.Context, score int) Result {
	score = ClampRating(score)
	out, code, err := c.runner.Run(ctx, common.QueryTimeout, Binary, "rate", strconv.Itoa(score))
	msg := cleanText(out)
	if err != nil {
		if code == 0 {
			code = CodeFailure
		}
		return Result{Code: code, Message: msg, Err: err}
	}
	return Result{Message: msg}
}

// ClampRating forces score into the range accepted by "nordvpn rate".
func ClampRating(score int) int {
	if score > common.MaxRating {
		return common.MaxRating
	}
	if score < common.MinRating {
		return common.MinRating
	}
	return score
}

// AccountInfo returns the account e-mail and expiry text.
func (c *Client) AccountInfo(ctx context.Context) (AccountInfo, error) {
	out, err := c.query(ctx, "account")
	if err != nil {
		return AccountInfo{}, err
	}
	return parseAccount(out), nil
}

// IsLoggedIn reports whether the CLI has a logged-in user.
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	out, err := c.query(ctx, "account")
	if err != nil {
		return false
	}
	return !strings.Contains(strings.ToLower(out), "not logged in")
}

// IsWireguardInstalled reports whether NordLynx can be used on this machine.
func (c *Client) IsWireguardInstalled(ctx context.Context) bool {
	out, _, err := c.runner.Run(ctx, common.PackageCheckTimeout, "dpkg-query", "-W", "-f=${Status}", "wireguard-dkms")
	if err == nil && strings.Contains(out, "install ok installed") {
		return true
	}
	_, _, err = c.runner.Run(ctx, common.PackageCheckTimeout, "wg", "--version")
	return err == nil
}

// UsesNordlynx reports whether the current connection uses NordLynx.
func (c *Client) UsesNordlynx(ctx context.Context) bool {
	out, err := c.QueryStatus(ctx)
	if err != nil {
		return false
	}
	return hasLine(out, "nordlynx")
}

// NeedsNordlynx reports whether the daemon is set to NordLynx, which hides
// the protocol setting.
func (c *Client) NeedsNordlynx(ctx context.Context) bool {
	out, err := c.QuerySettings(ctx)
	if err != nil {
		return false
	}
	return !hasLine(out, "protocol")
}

// Login logs into NordVPN with an access token.
func (c *Client) Login(ctx context.Context, token string) Result {
	if strings.TrimSpace(token) == "" {
		return Result{Code: CodeFailure, Message: "access token is empty", Err: common.ErrUserInputInvalid}
	}
	return c.change(ctx, "login", "--token", token)
}

// Logout logs the current user out.
func (c *Client) Logout(ctx context.Context) Result {
	return c.change(ctx, "logout")
}

// SetAutoconnect enables autoconnect to target, or disables it.
func (c *Client) SetAutoconnect(ctx context.Context, enabled bool, target string) Result {
	args := []string{"set", "autoconnect", onOff(enabled)}
	if enabled && target != "" {
		args = append(args, target)
	}
	return c.change(ctx, args...)
}

// SetCybersec switches CyberSec.
func (c *Client) SetCybersec(ctx context.Context, enabled bool) Result {
	return c.change(ctx, "set", "cybersec", onOff(enabled))
}

// SetKillswitch switches the kill switch.
func (c *Client) SetKillswitch(ctx context.Context, enabled bool) Result {
	return c.change(ctx, "set", "killswitch", onOff(enabled))
}

// SetProtocol selects UDP or TCP for OpenVPN.
func (c *Client) SetProtocol(ctx context.Context, protocol string) Result {
	return c.change(ctx, "set", "protocol", protocol)
}

// SetTechnology selects NordLynx or OpenVPN.
func (c *Client) SetTechnology(ctx context.Context, technology string) Result {
	return c.change(ctx, "set", "technology", technology)
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// ListRecommendedServers returns up to ten recommended server names, sorted.
// A negative countryID disables the country filter. Failures yield nil.
func (c *Client) ListRecommendedServers(ctx context.Context, countryID int) []string {
	servers := c.recommended(ctx, countryID)
	sort.Strings(servers)
	return servers
}

// FastestServer returns the API's top-ranked server, or "" when unknown.
func (c *Client) FastestServer(ctx context.Context) string {
	servers := c.recommended(ctx, -1)
	if len(servers) == 0 {
		return ""
	}
	return servers[0]
}

func (c *Client) recommended(ctx context.Context, countryID int) []string {
	nordlynx := c.NeedsNordlynx(ctx)
	servers, err := c.api.Recommendations(ctx, countryID)
	if err != nil {
		common.LogWarn("Could not fetch recommended servers: %v", err)
		return nil
	}
	return selectServers(servers, nordlynx)
}

// RecommendedCountry returns the country of the best recommended server, in
// the same underscore form as CountryRecord.Name.
func (c *Client) RecommendedCountry(ctx context.Context) string {
	servers, err := c.api.Recommendations(ctx, -1)
	if err != nil || len(servers) == 0 || len(servers[0].Locations) == 0 {
		return ""
	}
	return strings.ReplaceAll(servers[0].Locations[0].Country.Name, " ", "_")
}

// IsTimeout reports whether err comes from a command that ran out of time.
func IsTimeout(err error) bool {
	return errors.Is(err, common.ErrTimeout)
}
