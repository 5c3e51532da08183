package tui

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}).
			Bold(true)

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	resultStyle = lipgloss.NewStyle()
)

// styleFor returns the style used to render a transcript entry of kind k.
func styleFor(k entryKind) lipgloss.Style {
	switch k {
	case entryInput:
		return echoStyle
	case entryError:
		return errorStyle
	default:
		return resultStyle
	}
}
