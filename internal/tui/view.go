package tui

import (
	"fmt"
	"ranking-dashboard/internal/api"
	"ranking-dashboard/internal/domain"
	"ranking-dashboard/internal/history"
	"ranking-dashboard/internal/viewmodel"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

func (m Model) View() string {
	snap := m.vm.Snapshot()

	if snap.Selected != nil && snap.Series != nil {
		modal := renderModal(*snap.Selected, *snap.Series)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("🏆 Ranking"))
	b.WriteString("\n")
	b.WriteString(m.renderForm(snap))
	b.WriteString("\n\n")

	if podium := snap.Podium(); len(podium) > 0 {
		b.WriteString(renderPodium(podium))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderTable(snap.TableRows()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(snap))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.help()))

	return b.String()
}

func (m Model) renderForm(snap viewmodel.Snapshot) string {
	nameBox, tagBox := blurredBorder, blurredBorder
	switch m.focus {
	case focusName:
		nameBox = focusedBorder
	case focusTag:
		tagBox = focusedBorder
	}

	button := infoStyle.Render("[+ add]")
	if snap.Loading || m.pending > 0 {
		button = mutedStyle.Render("[ ... ]")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		nameBox.Render(m.name.View()),
		mutedStyle.Render(" # "),
		tagBox.Render(m.tag.View()),
		" ",
		button,
	)
}

// renderPodium lays the top three out as 2nd, 1st, 3rd. Missing places are skipped.
func renderPodium(podium []domain.Player) string {
	order := []int{1, 0, 2}
	cards := make([]string, 0, len(podium))
	for _, i := range order {
		if i < len(podium) {
			cards = append(cards, podiumCard(podium[i], i))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cards...)
}

func podiumCard(p domain.Player, place int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(placeColors[place]).
		Padding(0, 2).
		MarginRight(1).
		Align(lipgloss.Center)

	var lines []string
	lines = append(lines, placeStyle(place).Render(fmt.Sprintf("#%d", place+1)))

	if place == 0 {
		style = style.Padding(1, 3)
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Render(p.GameName),
			mutedStyle.Render("#"+p.TagLine),
			tierBadge(p),
			"",
			fmt.Sprintf("%s %s   %s %s",
				mutedStyle.Render("WIN RATE"), gainStyle.Render(fmt.Sprintf("%.1f%%", p.WinRate)),
				mutedStyle.Render("WINS"), winStyle.Render(fmt.Sprintf("%d", p.Wins))),
		)
	} else {
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Render(p.GameName),
			tierBadge(p),
			mutedStyle.Render(fmt.Sprintf("%d LP", p.LP)),
		)
	}

	return style.Render(strings.Join(lines, "\n"))
}

const (
	colRank     = 4
	colSummoner = 28
	colElo      = 22
	colChamps   = 18
	colGain     = 10
)

func (m Model) renderTable(rows []domain.Player) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Full ranking") + "\n\n")

	b.WriteString(headerStyle.Render(
		"  " + pad("#", colRank) + pad("Summoner", colSummoner) + pad("Elo", colElo) +
			pad("Top champs", colChamps) + pad("Gain", colGain) + "W / L"))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no players yet"))
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range rows {
		marker := "  "
		if i == m.cursor && m.focus == focusTable {
			marker = cursorStyle.Render("› ")
		}

		rank := fmt.Sprintf("%d", i+1)
		if i < len(placeColors) {
			rank = placeStyle(i).Render(rank)
		}

		summoner := truncate(p.GameName, colSummoner-8) + mutedStyle.Render(" #"+p.TagLine)
		elo := tierBadge(p) + mutedStyle.Render(fmt.Sprintf(" %d LP", p.LP))

		champs := mutedStyle.Render("-")
		if len(p.TopChampions) > 0 {
			champs = truncate(strings.Join(p.TopChampions, " "), colChamps-1)
		}

		gain := gainStyle.Render(fmt.Sprintf("+%d LP", p.LP))
		record := winStyle.Render(fmt.Sprintf("%dW", p.Wins)) + " / " + lossStyle.Render(fmt.Sprintf("%dL", p.Losses))

		b.WriteString(marker + pad(rank, colRank) + pad(summoner, colSummoner) + pad(elo, colElo) +
			pad(champs, colChamps) + pad(gain, colGain) + record + "\n")
	}

	return b.String()
}

func (m Model) renderStatus(snap viewmodel.Snapshot) string {
	switch {
	case snap.Loading || m.pending > 0:
		return infoStyle.Render("loading…")
	case snap.LastErr != nil:
		return errorStyle.Render(fmt.Sprintf("%s error: %v", api.KindOf(snap.LastErr), snap.LastErr))
	case m.notice != "":
		return infoStyle.Render(m.notice)
	}
	return ""
}

func (m Model) help() string {
	switch m.focus {
	case focusName, focusTag:
		return "tab switch field • enter add player • esc back to table"
	}
	return "↑/↓ move • enter open profile • t elo trend • r refresh • a add player • q quit"
}

const chartHeight = 10

func renderModal(p domain.Player, series history.Series) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.GameName))
	b.WriteString(mutedStyle.Render(" #" + p.TagLine))
	b.WriteString("\n")
	b.WriteString(tierBadge(p))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" • %dLP", p.LP)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Elo trend (simulated)"))
	b.WriteString("\n\n")
	b.WriteString(renderChart(series))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("esc close"))

	return modalStyle.Render(b.String())
}

// renderChart plots the series on a fixed 0-100 axis; a "today" value above 100 stretches it.
func renderChart(series history.Series) string {
	if len(series.Points) == 0 {
		return mutedStyle.Render("no history")
	}

	graph := asciigraph.Plot(series.Values(),
		asciigraph.Height(chartHeight),
		asciigraph.Width(len(series.Points)*8),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue),
	)

	labels := make([]string, len(series.Points))
	values := make([]string, len(series.Points))
	for i, pt := range series.Points {
		labels[i] = pad(pt.Label, 8)
		values[i] = pad(fmt.Sprintf("%d LP", pt.LP), 8)
	}

	return graph + "\n" + mutedStyle.Render(strings.Join(labels, "")) + "\n" + strings.Join(values, "")
}
