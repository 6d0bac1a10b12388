package vpn

import (
	"context"
	"strings"
	"sync"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/nordvpn"
)

// fakeAdapter records every state-changing command.
type fakeAdapter struct {
	mu sync.Mutex

	commands []string
	failing  map[string]bool

	statuses  []string
	statusErr error

	settings      string
	settingsErr   error
	settingsReads int
	wireguard     bool
	nordlynxInUse bool

	fastest  string
	loggedIn bool
	account  nordvpn.AccountInfo
	tokens   []string
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{failing: make(map[string]bool), loggedIn: true}
}

func (f *fakeAdapter) record(cmd string) nordvpn.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	for prefix := range f.failing {
		if strings.HasPrefix(cmd, prefix) {
			return nordvpn.Result{Code: nordvpn.CodeFailure, Message: "Whoops! Cannot reach User Daemon.", Err: common.ErrCommandFailed}
		}
	}
	return nordvpn.Result{Message: "ok"}
}

func (f *fakeAdapter) issued() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func (f *fakeAdapter) SetAutoconnect(ctx context.Context, enabled bool, target string) nordvpn.Result {
	return f.record(strings.TrimSpace("set autoconnect " + onOff(enabled) + " " + target))
}

func (f *fakeAdapter) SetCybersec(ctx context.Context, enabled bool) nordvpn.Result {
	return f.record("set cybersec " + onOff(enabled))
}

func (f *fakeAdapter) SetKillswitch(ctx context.Context, enabled bool) nordvpn.Result {
	return f.record("set killswitch " + onOff(enabled))
}

func (f *fakeAdapter) SetProtocol(ctx context.Context, protocol string) nordvpn.Result {
	return f.record("set protocol " + protocol)
}

func (f *fakeAdapter) SetTechnology(ctx context.Context, technology string) nordvpn.Result {
	return f.record("set technology " + technology)
}

func (f *fakeAdapter) Connect(ctx context.Context, target string) nordvpn.Result {
	return f.record(strings.TrimSpace("connect " + target))
}

func (f *fakeAdapter) Disconnect(ctx context.Context) nordvpn.Result {
	return f.record("disconnect")
}

func (f *fakeAdapter) FastestServer(ctx context.Context) string {
	return f.fastest
}

func (f *fakeAdapter) QuerySettings(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settingsReads++
	return f.settings, f.settingsErr
}

func (f *fakeAdapter) IsWireguardInstalled(ctx context.Context) bool {
	return f.wireguard
}

func (f *fakeAdapter) UsesNordlynx(ctx context.Context) bool {
	return f.nordlynxInUse
}

// QueryStatus pops the next queued status; the last one repeats.
func (f *fakeAdapter) QueryStatus(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return "", f.statusErr
	}
	if len(f.statuses) == 0 {
		return "", nil
	}
	s := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return s, nil
}

func (f *fakeAdapter) StatusInfo(ctx context.Context) (string, error) {
	s, err := f.QueryStatus(ctx)
	return strings.TrimSpace(s), err
}

func (f *fakeAdapter) Rate(ctx context.Context, score int) nordvpn.Result {
	return f.record("rate " + string(rune('0'+score)))
}

func (f *fakeAdapter) AccountInfo(ctx context.Context) (nordvpn.AccountInfo, error) {
	return f.account, nil
}

func (f *fakeAdapter) IsLoggedIn(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *fakeAdapter) Login(ctx context.Context, token string) nordvpn.Result {
	f.mu.Lock()
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	res := f.record("login")
	if res.OK() {
		f.mu.Lock()
		f.loggedIn = true
		f.mu.Unlock()
	}
	return res
}

func (f *fakeAdapter) Logout(ctx context.Context) nordvpn.Result {
	f.mu.Lock()
	f.loggedIn = false
	f.mu.Unlock()
	return f.record("logout")
}

const sampleSettings = `Technology: OPENVPN
Protocol: UDP
Firewall: enabled
Kill Switch: disabled
CyberSec: enabled
Obfuscate: disabled
Notify: disabled
Auto-connect: enabled
IPv6: disabled
DNS: disabled
`
