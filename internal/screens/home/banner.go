package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/ui/theme"
)

// Block-letter title.
const bannerTitleFull = ` ██████╗ ██╗   ██╗██╗███████╗
██╔═══██╗██║   ██║██║╚══███╔╝
██║   ██║██║   ██║██║  ███╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝
╚██████╔╝╚██████╔╝██║███████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerSubtitle = "A · R · E · N · A"

const bannerTitleCompact = "Q · U · I · Z · A · R · E · N · A"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(bannerTitleCompact))
	}

	sub := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(bannerSubtitle)

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(bannerTitleFull) + "\n" + sub)
}

// renderStatsBar renders lifetime stats in a bordered box matching
// content width.
func renderStatsBar(gamesPlayed, bestPoints, cw int, compact bool) string {
	gamesStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	pointsStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			gamesStyle.Render(fmt.Sprintf("▶%d", gamesPlayed)),
			pointsStyle.Render(fmt.Sprintf("◆%d", bestPoints)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			gamesStyle.Render(fmt.Sprintf("▶ %d PLAYED", gamesPlayed)),
			pointsStyle.Render(fmt.Sprintf("◆ %d BEST", bestPoints)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenuButtons renders each menu item as a fixed-width button, or
// plain lines in compact mode.
func renderMenuButtons(items []string, selected int, cw int, disabled map[int]bool, compact bool) string {
	if compact {
		return renderMenuCompact(items, selected, cw, disabled)
	}

	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Gold).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Gold).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines for very
// small terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Gold).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderQuizIDPrompt renders the quiz id entry box.
func renderQuizIDPrompt(inputView string, hosting bool, cw int) string {
	label := "Enter a quiz id to play"
	if hosting {
		label = "Enter a quiz id to host"
	}

	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label) +
		"\n\n" + inputView + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Enter to continue · Esc to cancel")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(body)
}
