// Package summary displays the end-of-session rollup.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/room"
	"github.com/anshgoel/quizarena/internal/router"
	"github.com/anshgoel/quizarena/internal/screen"
	"github.com/anshgoel/quizarena/internal/session"
	"github.com/anshgoel/quizarena/internal/ui/components"
	"github.com/anshgoel/quizarena/internal/ui/layout"
	"github.com/anshgoel/quizarena/internal/ui/theme"
)

// SummaryScreen displays the finished session's stats and, in
// multiplayer, the final standings.
type SummaryScreen struct {
	summary  *session.Summary
	rank     *int
	board    []room.Player
	selfName string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. rank and board are nil in solo mode.
func New(sum *session.Summary, rank *int, board []room.Player, selfName string) *SummaryScreen {
	return &SummaryScreen{summary: sum, rank: rank, board: board, selfName: selfName}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	// Title.
	title := "Quiz complete!"
	titleColor := theme.Primary
	if sum.Terminated {
		title = "Out of lives!"
		titleColor = theme.Error
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(titleColor).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	// Final rank.
	if s.rank != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Gold).
			Bold(true).
			Render(fmt.Sprintf("Final rank: #%d", *s.rank)))
		b.WriteString("\n\n")
	}

	// Points.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("◆ %d points", sum.Points)))
	b.WriteString("\n\n")

	// Stats line.
	accuracy := fmt.Sprintf("%.0f%%", sum.Accuracy*100)
	statsLine := fmt.Sprintf("Correct: %d/%d        Accuracy: %s        Best streak: %d        Avg: %ds",
		sum.Score, sum.TotalQuestions, accuracy, sum.BestStreak, sum.AvgTimeSeconds)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	// Final standings (multiplayer).
	if len(s.board) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Standings")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		rows := make([]components.RosterRow, 0, len(s.board))
		for i, p := range s.board {
			rows = append(rows, components.RosterRow{
				Rank:   i + 1,
				Avatar: p.Avatar,
				Name:   p.Name,
				Score:  p.Score,
				Streak: p.Streak,
				Self:   p.Name == s.selfName,
			})
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.RenderLeaderboard(rows, min(width-8, 40))))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
