package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/nordvpn-indicator/vpn"
)

// Adaptive colors that work on light and dark terminals.
var (
	colorBlue   = lipgloss.AdaptiveColor{Light: "#4687FF", Dark: "#6AA2FF"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#FF4672"}
	colorAmber  = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FFA500"}
	colorSubtle = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	warnStyle  = lipgloss.NewStyle().Foreground(colorAmber)

	pillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
)

// statusPill renders a connection status as a colored badge.
func statusPill(s vpn.ConnectionStatus) string {
	switch s {
	case vpn.StatusConnected:
		return pillStyle.Background(colorGreen).Render(s.String())
	case vpn.StatusDisconnected:
		return pillStyle.Background(colorRed).Render(s.String())
	default:
		return pillStyle.Background(colorAmber).Render(s.String())
	}
}

// onOff renders a boolean setting.
func onOff(b bool) string {
	if b {
		return okStyle.Render("enabled")
	}
	return labelStyle.Render("disabled")
}
