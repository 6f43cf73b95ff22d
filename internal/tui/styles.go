package tui

import (
	"ranking-dashboard/internal/domain"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginTop(1).
			MarginBottom(1)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	winStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
	lossStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	gainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	focusedBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#3B82F6"))
	blurredBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	// gold, silver, bronze
	placeColors = []lipgloss.Color{"220", "250", "208"}

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(1, 2)
)

var tierColors = map[domain.Tier]lipgloss.Color{
	domain.TierChallenger:  "#FDE047",
	domain.TierGrandmaster: "#F87171",
	domain.TierMaster:      "#D8B4FE",
	domain.TierDiamond:     "#93C5FD",
	domain.TierEmerald:     "#86EFAC",
	domain.TierPlatinum:    "#5EEAD4",
	domain.TierGold:        "#EAB308",
	domain.TierSilver:      "#D1D5DB",
	domain.TierBronze:      "#FB923C",
	domain.TierIron:        "#6B7280",
	domain.TierUnranked:    "#4B5563",
}

func tierStyle(t domain.Tier) lipgloss.Style {
	c, ok := tierColors[t]
	if !ok {
		c = tierColors[domain.TierUnranked]
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// tierBadge renders "GOLD II" in the tier's colour.
func tierBadge(p domain.Player) string {
	return tierStyle(p.Tier).Render(p.Division())
}

func placeStyle(i int) lipgloss.Style {
	if i < len(placeColors) {
		return lipgloss.NewStyle().Foreground(placeColors[i]).Bold(true)
	}
	return lipgloss.NewStyle()
}

// pad right-pads s to w visible cells; ANSI sequences do not count.
func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// truncate cuts plain text to w cells.
func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}
