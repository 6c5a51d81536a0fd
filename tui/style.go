package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Bold(true)

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindExits
	kindReward
	kindDanger
	kindSystem
)

// classifyLine determines what kind of output line this is, keyed on the
// engine's fixed phrasing.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "You may go ["):
		return kindExits
	case strings.HasPrefix(line, "+") && strings.Contains(line, "XP"):
		return kindReward
	case strings.HasPrefix(line, "Perk unlocked"),
		strings.HasPrefix(line, "Quest complete"),
		strings.HasPrefix(line, "Quest accepted"):
		return kindReward
	case strings.Contains(line, "damage."),
		strings.Contains(line, "health)"),
		strings.Contains(line, "blocks your path"),
		strings.Contains(line, "winds up"):
		return kindDanger
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindExits:
		return styleExits.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindDanger:
		return styleDanger.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}
