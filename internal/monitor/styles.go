// internal/monitor/styles.go
package monitor

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	headerStyle = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	helpStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// swrColor grades a standing wave ratio against its protection limit.
// A zero limit means the limit is unknown.
func swrColor(swr, limit float32) lipgloss.Style {
	switch {
	case limit > 0 && swr >= limit:
		return critStyle
	case swr >= 2:
		return warnStyle
	default:
		return okStyle
	}
}

// tempColor grades a temperature against its limit.
func tempColor(temp, limit float32) lipgloss.Style {
	switch {
	case limit <= 0:
		return valueStyle
	case temp >= limit:
		return critStyle
	case temp >= limit*0.85:
		return warnStyle
	default:
		return okStyle
	}
}

func flagStyle(on bool) lipgloss.Style {
	if on {
		return warnStyle
	}
	return labelStyle
}
