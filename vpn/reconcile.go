package vpn

import (
	"context"
	"strings"

	"github.com/yllada/nordvpn-indicator/common"
	"github.com/yllada/nordvpn-indicator/nordvpn"
)

// Commander issues the commands that change daemon state.
type Commander interface {
	SetAutoconnect(ctx context.Context, enabled bool, target string) nordvpn.Result
	SetCybersec(ctx context.Context, enabled bool) nordvpn.Result
	SetKillswitch(ctx context.Context, enabled bool) nordvpn.Result
	SetProtocol(ctx context.Context, protocol string) nordvpn.Result
	SetTechnology(ctx context.Context, technology string) nordvpn.Result
	Connect(ctx context.Context, target string) nordvpn.Result
	Disconnect(ctx context.Context) nordvpn.Result
	FastestServer(ctx context.Context) string
}

// Reconciler converges the daemon settings to a desired snapshot with the
// fewest commands.
type Reconciler struct {
	cmd   Commander
	store *SettingsStore
}

// NewReconciler creates a reconciler. store may be nil, in which case the
// autoconnect marker files are left alone.
func NewReconciler(cmd Commander, store *SettingsStore) *Reconciler {
	return &Reconciler{cmd: cmd, store: store}
}

// Reconcile applies the differences between old and desired, in a fixed
// order: autoconnect, cybersec, kill switch, protocol, technology. A failed
// step doesn't stop the following ones. It reports whether at least one step
// succeeded.
func (r *Reconciler) Reconcile(ctx context.Context, old, desired SettingsSnapshot) bool {
	changed := false
	step := func(name string, res nordvpn.Result) {
		if res.OK() {
			changed = true
			common.LogInfo("Applied %s: %s", name, res.Message)
			return
		}
		common.LogWarn("Could not apply %s (%d): %s", name, res.Code, res.Message)
	}

	if old.Autoconnect != desired.Autoconnect || old.Server != desired.Server || old.Country != desired.Country {
		res := r.cmd.SetAutoconnect(ctx, false, "")
		if desired.Autoconnect {
			res = r.cmd.SetAutoconnect(ctx, true, desired.Target())
		}
		step("autoconnect", res)
		if res.OK() && r.store != nil {
			if err := r.store.SaveTarget(desired.Autoconnect, desired.Server, desired.Country); err != nil {
				common.LogError("Could not save autoconnect target: %v", err)
			}
		}
	}

	if old.Cybersec != desired.Cybersec {
		step("cybersec", r.cmd.SetCybersec(ctx, desired.Cybersec))
	}

	if old.Killswitch != desired.Killswitch {
		step("kill switch", r.cmd.SetKillswitch(ctx, desired.Killswitch))
	}

	if desired.Protocol != "" && !strings.EqualFold(old.Protocol, desired.Protocol) {
		step("protocol", r.cmd.SetProtocol(ctx, desired.Protocol))
	}

	// Switching technology drops the tunnel, so it runs last.
	if desired.NordlynxAvailable && old.NordlynxActive != desired.NordlynxActive {
		technology := common.TechnologyOpenVPN
		if desired.NordlynxActive {
			technology = common.TechnologyNordLynx
		}
		if res := r.cmd.Disconnect(ctx); !res.OK() {
			common.LogWarn("Disconnect before technology switch failed: %s", res.Message)
		}
		res := r.cmd.SetTechnology(ctx, technology)
		step("technology", res)

		server := r.cmd.FastestServer(ctx)
		if res := r.cmd.Connect(ctx, server); !res.OK() {
			common.LogWarn("Reconnect after technology switch failed: %s", res.Message)
		}
	}

	return changed
}
