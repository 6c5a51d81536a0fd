package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing room,
// health, XP, combat state, and turn count.
func (m Model) renderStatusBar() string {
	cur, maxHP := m.engine.Health()

	left := fmt.Sprintf(" Room %d | HP %d/%d | XP %d", m.engine.RoomID(), cur, maxHP, m.engine.XP())
	if m.engine.InCombat() {
		left += " | IN COMBAT"
	}
	right := fmt.Sprintf("%s | T:%d ", m.engine.MutatorName(), m.engine.Turn())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
