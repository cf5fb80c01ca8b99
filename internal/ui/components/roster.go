package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/ui/theme"
)

// RosterRow is one player line in a lobby roster or leaderboard.
type RosterRow struct {
	Rank   int
	Avatar string
	Name   string
	Score  int
	Streak int
	Self   bool
}

// RenderRoster renders lobby membership without scores.
func RenderRoster(rows []RosterRow, width int) string {
	var s string
	for _, r := range rows {
		line := fmt.Sprintf("  %s  %s", r.Avatar, r.Name)
		if r.Self {
			line += "  (you)"
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// RenderLeaderboard renders ranked players with scores and streaks.
func RenderLeaderboard(rows []RosterRow, width int) string {
	var s string
	for _, r := range rows {
		medal := fmt.Sprintf("%d.", r.Rank)
		switch r.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		streak := ""
		if r.Streak >= 2 {
			streak = fmt.Sprintf(" 🔥%d", r.Streak)
		}

		line := fmt.Sprintf("%s %s %s  %d%s", medal, r.Avatar, r.Name, r.Score, streak)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if r.Self {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
